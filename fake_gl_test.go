package main

import (
	"strings"

	"golang.org/x/mobile/gl"
)

// sourceGL accepts every GL call a session makes and remembers the shader
// sources it was asked to compile. A source containing "mian(" fails.
type sourceGL struct {
	gl.Context

	nextID   uint32
	sources  map[uint32]string
	compiled []string
}

func newSourceGL() *sourceGL {
	return &sourceGL{sources: map[uint32]string{}}
}

func (f *sourceGL) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *sourceGL) CreateShader(ty gl.Enum) gl.Shader { return gl.Shader{Value: f.id()} }

func (f *sourceGL) ShaderSource(s gl.Shader, src string) { f.sources[s.Value] = src }

func (f *sourceGL) CompileShader(s gl.Shader) {
	f.compiled = append(f.compiled, f.sources[s.Value])
}

func (f *sourceGL) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if strings.Contains(f.sources[s.Value], "mian(") {
		return 0
	}
	return 1
}

func (f *sourceGL) GetShaderInfoLog(s gl.Shader) string { return "ERROR: 0:3: 'mian' : syntax error" }

func (f *sourceGL) DeleteShader(s gl.Shader) {}

func (f *sourceGL) CreateProgram() gl.Program { return gl.Program{Init: true, Value: f.id()} }

func (f *sourceGL) AttachShader(p gl.Program, s gl.Shader) {}

func (f *sourceGL) LinkProgram(p gl.Program) {}

func (f *sourceGL) GetProgrami(p gl.Program, pname gl.Enum) int {
	return 1
}

func (f *sourceGL) GetProgramInfoLog(p gl.Program) string { return "" }

func (f *sourceGL) DeleteProgram(p gl.Program) {}

func (f *sourceGL) UseProgram(p gl.Program) {}

func (f *sourceGL) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	if name == "Position" {
		return gl.Attrib{Value: 0}
	}
	return gl.Attrib{Value: 1}
}

func (f *sourceGL) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{Value: 0}
}

func (f *sourceGL) EnableVertexAttribArray(a gl.Attrib) {}

func (f *sourceGL) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
}

func (f *sourceGL) CreateVertexArray() gl.VertexArray { return gl.VertexArray{Value: f.id()} }

func (f *sourceGL) BindVertexArray(v gl.VertexArray) {}

func (f *sourceGL) DeleteVertexArray(v gl.VertexArray) {}

func (f *sourceGL) CreateBuffer() gl.Buffer { return gl.Buffer{Value: f.id()} }

func (f *sourceGL) BindBuffer(target gl.Enum, b gl.Buffer) {}

func (f *sourceGL) BufferData(target gl.Enum, src []byte, usage gl.Enum) {}

func (f *sourceGL) DeleteBuffer(b gl.Buffer) {}

