package renderer

import (
	"image"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"
	"golang.org/x/mobile/gl"

	"iso_gl/model"
	vm "iso_gl/vector_math"
)

type Options struct {
	Program    ProgramOptions
	Layout     model.VertexLayout
	IndexWidth model.IndexWidth
	ClearColor vm.Vec4
}

func DefaultOptions() Options {
	return Options{
		Program:    DefaultProgramOptions(),
		Layout:     model.VertexFormat,
		IndexWidth: model.Index32,
		ClearColor: vm.NewColor(1, 1, 1, 1),
	}
}

// Session owns every GPU resource of one rendering run: the shader program,
// the mesh buffers and their vertex array object. The host calls Update and
// Draw once per frame from the render thread and Release before the GL
// context goes away.
type Session struct {
	ID ulid.ULID

	Program *ShaderProgram
	Buffers *MeshBuffers

	glctx   gl.Context
	source  ShaderSource
	opts    Options
	mesh    *model.Mesh
	elapsed float32
}

// NewSession bootstraps the shader program from src and uploads mesh.
func NewSession(glctx gl.Context, src ShaderSource, mesh *model.Mesh, opts Options) (*Session, error) {
	s := &Session{
		ID:     ulid.Make(),
		glctx:  glctx,
		source: src,
		opts:   opts,
		mesh:   mesh,
	}
	prog, err := Bootstrap(glctx, src, opts.Program)
	if err != nil {
		return nil, err
	}
	bufs, err := UploadMesh(glctx, mesh, opts.Layout, opts.IndexWidth, prog)
	if err != nil {
		prog.Release(glctx)
		return nil, err
	}
	s.Program = prog
	s.Buffers = bufs
	glog.Infof("[%s] Session ready: mesh %q, %d triangles", s.ID, mesh.Name, mesh.TriangleCount())
	return s, nil
}

func (s *Session) Source() ShaderSource {
	return s.source
}

// Update is the per frame update hook, elapsed is seconds since the last resume.
func (s *Session) Update(elapsed float32) {
	s.elapsed = elapsed
}

// Draw is the per frame draw hook for the drawable rectangle in pixels.
func (s *Session) Draw(viewport image.Rectangle) vm.Mat {
	return Draw(s.glctx, s.Program, s.Buffers, s.elapsed, viewport, s.opts.ClearColor)
}

// Reload rebuilds the program from src (the current source when nil) and
// re-records the attribute layout against it. On failure the running program
// and buffers stay untouched.
func (s *Session) Reload(src ShaderSource) error {
	if src == nil {
		src = s.source
	}
	prog, err := Bootstrap(s.glctx, src, s.opts.Program)
	if err != nil {
		return err
	}
	bufs, err := UploadMesh(s.glctx, s.mesh, s.opts.Layout, s.opts.IndexWidth, prog)
	if err != nil {
		prog.Release(s.glctx)
		return err
	}
	s.Buffers.Release(s.glctx)
	s.Program.Release(s.glctx)
	s.Program, s.Buffers, s.source = prog, bufs, src
	glog.Infof("[%s] Reloaded shader program %d", s.ID, prog.Program.Value)
	return nil
}

func (s *Session) Release() {
	if s.Buffers != nil {
		s.Buffers.Release(s.glctx)
		s.Buffers = nil
	}
	if s.Program != nil {
		s.Program.Release(s.glctx)
		s.Program = nil
	}
	glog.Infof("[%s] Session released", s.ID)
}
