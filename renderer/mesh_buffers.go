package renderer

import (
	"fmt"

	"github.com/golang/glog"
	"golang.org/x/mobile/gl"

	"iso_gl/model"
)

// MeshBuffers are the device side copies of a mesh and the vertex array object
// recording their attribute layout.
type MeshBuffers struct {
	VAO          gl.VertexArray
	VertexBuffer gl.Buffer
	IndexBuffer  gl.Buffer

	IndexCount int
	IndexType  gl.Enum

	VertexBytes int
	IndexBytes  int
}

// UploadMesh validates m, copies it into two static buffers and configures the
// attribute pointers of prog according to layout. Indices are packed no wider
// than width. All bindings are scoped to a fresh vertex array object that is
// unbound again before returning.
func UploadMesh(glctx gl.Context, m *model.Mesh, layout model.VertexLayout, width model.IndexWidth, prog *ShaderProgram) (*MeshBuffers, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload mesh %q: %w", m.Name, err)
	}
	el, err := m.IndexElement(width)
	if err != nil {
		return nil, err
	}

	b := &MeshBuffers{
		IndexCount: len(m.Indices),
		IndexType:  el.Type,
	}
	b.createVertexArrayObject(glctx)
	b.uploadVertexBuffer(glctx, layout.Pack(m.Vertices))
	configureAttributeLayout(glctx, layout, prog)
	b.uploadIndexBuffer(glctx, m.PackIndices(el))

	glctx.BindVertexArray(gl.VertexArray{})
	glctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	glctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{})

	glog.Infof("Uploaded mesh %q: %d vertices (%d Byte), %d indices (%d Byte)",
		m.Name, len(m.Vertices), b.VertexBytes, b.IndexCount, b.IndexBytes)
	return b, nil
}

func (b *MeshBuffers) createVertexArrayObject(glctx gl.Context) {
	b.VAO = glctx.CreateVertexArray()
	glctx.BindVertexArray(b.VAO)
}

func (b *MeshBuffers) uploadVertexBuffer(glctx gl.Context, data []byte) {
	b.VertexBuffer = glctx.CreateBuffer()
	glctx.BindBuffer(gl.ARRAY_BUFFER, b.VertexBuffer)
	glctx.BufferData(gl.ARRAY_BUFFER, data, gl.STATIC_DRAW)
	b.VertexBytes = len(data)
}

func (b *MeshBuffers) uploadIndexBuffer(glctx gl.Context, data []byte) {
	b.IndexBuffer = glctx.CreateBuffer()
	glctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IndexBuffer)
	glctx.BufferData(gl.ELEMENT_ARRAY_BUFFER, data, gl.STATIC_DRAW)
	b.IndexBytes = len(data)
}

// configureAttributeLayout points every attribute of layout at the bound array
// buffer. Attributes the program did not resolve are skipped.
func configureAttributeLayout(glctx gl.Context, layout model.VertexLayout, prog *ShaderProgram) {
	for _, a := range layout.Attributes {
		slot, ok := prog.Slot(a.Binding)
		if !ok {
			glog.Warningf("Skipping %s attribute, program has no location for it", a.Binding)
			continue
		}
		glctx.EnableVertexAttribArray(slot)
		glctx.VertexAttribPointer(slot, a.Components, a.Type, a.Normalized, layout.Stride, a.Offset)
	}
}

func (b *MeshBuffers) Release(glctx gl.Context) {
	glctx.DeleteVertexArray(b.VAO)
	glctx.DeleteBuffer(b.VertexBuffer)
	glctx.DeleteBuffer(b.IndexBuffer)
}
