package renderer

import (
	"regexp"
	"strings"

	"golang.org/x/mobile/gl"
)

// fakeGL records the calls the renderer makes. Methods it does not override
// panic through the nil embedded gl.Context.
type fakeGL struct {
	gl.Context

	nextID uint32

	shaderSrc   map[uint32]string
	compiled    map[uint32]bool
	attached    map[uint32][]uint32
	linked      map[uint32]bool
	failLink    bool
	linkLog     string
	noShaderObj bool

	// location tables built at link time from declarations in the sources
	attribs  map[uint32]map[string]int
	uniforms map[uint32]map[string]int32

	current   gl.Program
	arrayBuf  gl.Buffer
	vao       gl.VertexArray
	vaoElems  map[uint32]gl.Buffer
	bufData   map[uint32][]byte
	bufTarget map[uint32]gl.Enum

	enabled   map[uint]bool
	pointers  []pointerCall
	uniformM4 [][]float32
	draws     []drawCall
	viewport  [4]int
	clear     [4]float32

	deletedShaders  []uint32
	deletedPrograms []uint32
	deletedBuffers  []uint32
	deletedVAOs     []uint32

	pendingErr gl.Enum
}

type pointerCall struct {
	slot       uint
	size       int
	ty         gl.Enum
	normalized bool
	stride     int
	offset     int
	buffer     uint32
}

type drawCall struct {
	mode   gl.Enum
	count  int
	ty     gl.Enum
	offset int
	vao    uint32
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		shaderSrc: map[uint32]string{},
		compiled:  map[uint32]bool{},
		attached:  map[uint32][]uint32{},
		linked:    map[uint32]bool{},
		attribs:   map[uint32]map[string]int{},
		uniforms:  map[uint32]map[string]int32{},
		vaoElems:  map[uint32]gl.Buffer{},
		bufData:   map[uint32][]byte{},
		bufTarget: map[uint32]gl.Enum{},
		enabled:   map[uint]bool{},
	}
}

func (f *fakeGL) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeGL) CreateShader(ty gl.Enum) gl.Shader {
	if f.noShaderObj {
		return gl.Shader{}
	}
	return gl.Shader{Value: f.id()}
}

func (f *fakeGL) ShaderSource(s gl.Shader, src string) { f.shaderSrc[s.Value] = src }

func (f *fakeGL) CompileShader(s gl.Shader) {
	f.compiled[s.Value] = strings.Contains(f.shaderSrc[s.Value], "main(")
}

func (f *fakeGL) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if pname == gl.COMPILE_STATUS && f.compiled[s.Value] {
		return 1
	}
	return 0
}

func (f *fakeGL) GetShaderInfoLog(s gl.Shader) string {
	if f.compiled[s.Value] {
		return ""
	}
	return "ERROR: 0:3: 'mian' : syntax error"
}

func (f *fakeGL) DeleteShader(s gl.Shader) { f.deletedShaders = append(f.deletedShaders, s.Value) }

func (f *fakeGL) CreateProgram() gl.Program { return gl.Program{Init: true, Value: f.id()} }

func (f *fakeGL) AttachShader(p gl.Program, s gl.Shader) {
	f.attached[p.Value] = append(f.attached[p.Value], s.Value)
}

var declRe = regexp.MustCompile(`(?m)^\s*(attribute|uniform)\s+\w+\s+(\w+)\s*;`)

func (f *fakeGL) LinkProgram(p gl.Program) {
	if f.failLink {
		return
	}
	f.linked[p.Value] = true
	attribs := map[string]int{}
	uniforms := map[string]int32{}
	for _, s := range f.attached[p.Value] {
		for _, m := range declRe.FindAllStringSubmatch(f.shaderSrc[s], -1) {
			if m[1] == "attribute" {
				attribs[m[2]] = len(attribs)
			} else {
				uniforms[m[2]] = int32(len(uniforms))
			}
		}
	}
	f.attribs[p.Value] = attribs
	f.uniforms[p.Value] = uniforms
}

func (f *fakeGL) GetProgrami(p gl.Program, pname gl.Enum) int {
	if pname == gl.LINK_STATUS && f.linked[p.Value] {
		return 1
	}
	return 0
}

func (f *fakeGL) GetProgramInfoLog(p gl.Program) string { return f.linkLog }

func (f *fakeGL) DeleteProgram(p gl.Program) {
	f.deletedPrograms = append(f.deletedPrograms, p.Value)
}

func (f *fakeGL) UseProgram(p gl.Program) { f.current = p }

// GetAttribLocation returns -1 the way the cgo binding does: sign extended
// into the unsigned field.
func (f *fakeGL) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	if loc, ok := f.attribs[p.Value][name]; ok {
		return gl.Attrib{Value: uint(loc)}
	}
	return gl.Attrib{Value: ^uint(0)}
}

func (f *fakeGL) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	if loc, ok := f.uniforms[p.Value][name]; ok {
		return gl.Uniform{Value: loc}
	}
	return gl.Uniform{Value: -1}
}

func (f *fakeGL) EnableVertexAttribArray(a gl.Attrib) { f.enabled[a.Value] = true }

func (f *fakeGL) CreateVertexArray() gl.VertexArray { return gl.VertexArray{Value: f.id()} }

func (f *fakeGL) BindVertexArray(v gl.VertexArray) { f.vao = v }

func (f *fakeGL) DeleteVertexArray(v gl.VertexArray) { f.deletedVAOs = append(f.deletedVAOs, v.Value) }

func (f *fakeGL) CreateBuffer() gl.Buffer { return gl.Buffer{Value: f.id()} }

func (f *fakeGL) BindBuffer(target gl.Enum, b gl.Buffer) {
	switch target {
	case gl.ARRAY_BUFFER:
		f.arrayBuf = b
	case gl.ELEMENT_ARRAY_BUFFER:
		if f.vao.Value != 0 {
			f.vaoElems[f.vao.Value] = b
		}
	}
	if b.Value != 0 {
		f.bufTarget[b.Value] = target
	}
}

func (f *fakeGL) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	var b gl.Buffer
	switch target {
	case gl.ARRAY_BUFFER:
		b = f.arrayBuf
	case gl.ELEMENT_ARRAY_BUFFER:
		b = f.vaoElems[f.vao.Value]
	}
	if usage != gl.STATIC_DRAW {
		f.pendingErr = gl.INVALID_ENUM
	}
	f.bufData[b.Value] = append([]byte(nil), src...)
}

func (f *fakeGL) DeleteBuffer(b gl.Buffer) { f.deletedBuffers = append(f.deletedBuffers, b.Value) }

func (f *fakeGL) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.pointers = append(f.pointers, pointerCall{
		slot: dst.Value, size: size, ty: ty, normalized: normalized,
		stride: stride, offset: offset, buffer: f.arrayBuf.Value,
	})
}

func (f *fakeGL) Viewport(x, y, width, height int) { f.viewport = [4]int{x, y, width, height} }

func (f *fakeGL) ClearColor(r, g, b, a float32) { f.clear = [4]float32{r, g, b, a} }

func (f *fakeGL) Clear(mask gl.Enum) {}

func (f *fakeGL) UniformMatrix4fv(dst gl.Uniform, src []float32) {
	f.uniformM4 = append(f.uniformM4, append([]float32(nil), src...))
}

func (f *fakeGL) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.draws = append(f.draws, drawCall{mode: mode, count: count, ty: ty, offset: offset, vao: f.vao.Value})
}

func (f *fakeGL) GetError() gl.Enum {
	e := f.pendingErr
	f.pendingErr = gl.NO_ERROR
	return e
}
