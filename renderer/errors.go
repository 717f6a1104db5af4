package renderer

import (
	"fmt"

	"github.com/golang/glog"
	"golang.org/x/mobile/gl"
)

// ShaderNotFoundError is returned when a shader source cannot be located or read.
type ShaderNotFoundError struct {
	Name   string
	Source string
	Err    error
}

func (e *ShaderNotFoundError) Error() string {
	return fmt.Sprintf("shader %q not found in %s: %v", e.Name, e.Source, e.Err)
}

func (e *ShaderNotFoundError) Unwrap() error { return e.Err }

// CompileError carries the driver's info log for a shader that failed to compile.
type CompileError struct {
	Name  string
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader %q: %s", e.Stage, e.Name, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link shader program: %s", e.Log)
}

// BindingError reports an attribute or uniform the linked program does not expose.
type BindingError struct {
	Name string
	Kind string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s %q not found in shader program", e.Kind, e.Name)
}

// GLError wraps a glGetError code.
type GLError struct {
	Code gl.Enum
}

func (e *GLError) Error() string {
	switch e.Code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error 0x%x", uint32(e.Code))
	}
}

// CheckError returns the oldest pending GL error, or nil.
func CheckError(glctx gl.Context) error {
	if code := glctx.GetError(); code != gl.NO_ERROR {
		return &GLError{Code: code}
	}
	return nil
}

// Abort is the last resort for setup failures the host chose not to recover
// from. It logs and terminates the process; tests replace it.
var Abort = func(err error) {
	glog.Exitf("Unrecoverable render setup failure: %v", err)
}
