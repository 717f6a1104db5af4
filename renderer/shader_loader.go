package renderer

import (
	"github.com/golang/glog"
	"golang.org/x/mobile/gl"

	"iso_gl/model"
)

type ShaderStage gl.Enum

const (
	VertexStage   = ShaderStage(gl.VERTEX_SHADER)
	FragmentStage = ShaderStage(gl.FRAGMENT_SHADER)
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// BindingNames are the identifiers the shaders must declare.
type BindingNames struct {
	Position   string
	Color      string
	Projection string
}

var DefaultBindings = BindingNames{
	Position:   "Position",
	Color:      "SourceColor",
	Projection: "Projection",
}

// ProgramOptions names the two shader resources and the bindings to resolve.
// With Strict set, a binding the program does not expose is an error.
type ProgramOptions struct {
	Vertex   string
	Fragment string
	Bindings BindingNames
	Strict   bool
}

func DefaultProgramOptions() ProgramOptions {
	return ProgramOptions{
		Vertex:   "SimpleVertex",
		Fragment: "SimpleFragment",
		Bindings: DefaultBindings,
		Strict:   true,
	}
}

// ShaderProgram is a linked program with its resolved attribute and uniform locations.
type ShaderProgram struct {
	Program           gl.Program
	PositionSlot      gl.Attrib
	ColorSlot         gl.Attrib
	ProjectionUniform gl.Uniform
}

// Slot maps a vertex layout binding to the attribute location resolved for it.
func (p *ShaderProgram) Slot(b model.Binding) (gl.Attrib, bool) {
	switch b {
	case model.BindPosition:
		return p.PositionSlot, attribValid(p.PositionSlot)
	case model.BindColor:
		return p.ColorSlot, attribValid(p.ColorSlot)
	default:
		return gl.Attrib{}, false
	}
}

func (p *ShaderProgram) Release(glctx gl.Context) {
	glctx.DeleteProgram(p.Program)
}

// Bootstrap compiles the vertex and fragment shader, links them and resolves the
// bindings. On failure nothing is left allocated.
func Bootstrap(glctx gl.Context, src ShaderSource, opts ProgramOptions) (*ShaderProgram, error) {
	vs, err := CompileShader(glctx, src, opts.Vertex, VertexStage)
	if err != nil {
		return nil, err
	}
	fs, err := CompileShader(glctx, src, opts.Fragment, FragmentStage)
	if err != nil {
		glctx.DeleteShader(vs)
		return nil, err
	}
	program, err := LinkProgram(glctx, vs, fs)
	if err != nil {
		return nil, err
	}
	sp, err := ResolveBindings(glctx, program, opts.Bindings, opts.Strict)
	if err != nil {
		glctx.DeleteProgram(program)
		return nil, err
	}
	glog.Infof("Created shader program %d from %s (%s, %s)", program.Value, src, opts.Vertex, opts.Fragment)
	return sp, nil
}

// CompileShader reads the named shader source and compiles it for the given stage.
func CompileShader(glctx gl.Context, src ShaderSource, name string, stage ShaderStage) (gl.Shader, error) {
	code, err := src.ReadShader(name)
	if err != nil {
		return gl.Shader{}, &ShaderNotFoundError{Name: name, Source: src.String(), Err: err}
	}
	glog.V(1).Infof("Read %s shader %q (%d Byte)", stage, name, len(code))

	shader := glctx.CreateShader(gl.Enum(stage))
	if shader.Value == 0 {
		return gl.Shader{}, &CompileError{Name: name, Stage: stage, Log: "could not create shader object"}
	}
	glctx.ShaderSource(shader, string(code))
	glctx.CompileShader(shader)
	if glctx.GetShaderi(shader, gl.COMPILE_STATUS) == 0 {
		log := glctx.GetShaderInfoLog(shader)
		glctx.DeleteShader(shader)
		if log == "" {
			log = "driver returned an empty info log"
		}
		glog.Errorf("Failed to compile %s shader %q:\n%s", stage, name, log)
		return gl.Shader{}, &CompileError{Name: name, Stage: stage, Log: log}
	}
	return shader, nil
}

// LinkProgram attaches both stages to a new program and links it. The shader
// objects are flagged for deletion, they go away with the program.
func LinkProgram(glctx gl.Context, vs, fs gl.Shader) (gl.Program, error) {
	program := glctx.CreateProgram()
	if program.Value == 0 {
		glctx.DeleteShader(vs)
		glctx.DeleteShader(fs)
		return gl.Program{}, &LinkError{Log: "no programs available"}
	}
	glctx.AttachShader(program, vs)
	glctx.AttachShader(program, fs)
	glctx.LinkProgram(program)

	glctx.DeleteShader(vs)
	glctx.DeleteShader(fs)

	if glctx.GetProgrami(program, gl.LINK_STATUS) == 0 {
		log := glctx.GetProgramInfoLog(program)
		glctx.DeleteProgram(program)
		if log == "" {
			log = "driver returned an empty info log"
		}
		glog.Errorf("Failed to link shader program:\n%s", log)
		return gl.Program{}, &LinkError{Log: log}
	}
	return program, nil
}

// ResolveBindings makes program current, looks up the position and color
// attributes and the projection uniform, and enables both attribute arrays.
func ResolveBindings(glctx gl.Context, program gl.Program, names BindingNames, strict bool) (*ShaderProgram, error) {
	glctx.UseProgram(program)

	sp := &ShaderProgram{
		Program:           program,
		PositionSlot:      glctx.GetAttribLocation(program, names.Position),
		ColorSlot:         glctx.GetAttribLocation(program, names.Color),
		ProjectionUniform: glctx.GetUniformLocation(program, names.Projection),
	}

	missing := []*BindingError{}
	if !attribValid(sp.PositionSlot) {
		missing = append(missing, &BindingError{Name: names.Position, Kind: "attribute"})
	}
	if !attribValid(sp.ColorSlot) {
		missing = append(missing, &BindingError{Name: names.Color, Kind: "attribute"})
	}
	if sp.ProjectionUniform.Value < 0 {
		missing = append(missing, &BindingError{Name: names.Projection, Kind: "uniform"})
	}
	if len(missing) > 0 {
		if strict {
			return nil, missing[0]
		}
		for _, m := range missing {
			glog.Warningf("Ignoring unresolved binding: %v", m)
		}
	}

	for _, slot := range []gl.Attrib{sp.PositionSlot, sp.ColorSlot} {
		if attribValid(slot) {
			glctx.EnableVertexAttribArray(slot)
		}
	}
	glog.V(1).Infof("Resolved bindings: %s=%d %s=%d %s=%d",
		names.Position, int32(sp.PositionSlot.Value),
		names.Color, int32(sp.ColorSlot.Value),
		names.Projection, sp.ProjectionUniform.Value)
	return sp, nil
}

// attribValid reports whether a location came back as -1. The binding stores
// GLint -1 sign extended into an unsigned field, the low 32 bits keep the sign.
func attribValid(a gl.Attrib) bool {
	return int32(a.Value) >= 0
}
