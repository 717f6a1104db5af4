package model

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/mobile/gl"
)

var (
	ErrEmptyMesh       = errors.New("mesh has no vertices or no indices")
	ErrTooManyVertices = errors.New("mesh has more vertices than the index type can address")
)

// IndexRangeError reports an index pointing past the end of the vertex list.
type IndexRangeError struct {
	Position    int
	Index       uint32
	VertexCount int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf(
		"index %d at position %d is out of range, mesh has %d vertices",
		e.Index, e.Position, e.VertexCount,
	)
}

// Mesh is a triangle list. Every 3 indices form one triangle referencing
// positions in Vertices.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

func NewMesh(name string, v []Vertex, id []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: v,
		Indices:  id,
	}
}

// Validate checks the mesh can be drawn as an indexed triangle list.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return ErrEmptyMesh
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %d indices do not form whole triangles", m.Name, len(m.Indices))
	}
	if idx, pos, found := lo.FindIndexOf(m.Indices, func(i uint32) bool {
		return int(i) >= len(m.Vertices)
	}); found {
		return &IndexRangeError{Position: pos, Index: idx, VertexCount: len(m.Vertices)}
	}
	return nil
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IndexElement is the GL element type used for an index buffer and its size in bytes.
type IndexElement struct {
	Type gl.Enum
	Size int
}

// IndexWidth is the widest element index the context draws with, in bytes.
type IndexWidth int

const (
	Index16 IndexWidth = 2 // OpenGL ES 2.0
	Index32 IndexWidth = 4 // UNSIGNED_INT indices are core since OpenGL ES 3.0
)

// IndexWidthFor returns the widest index type of an OpenGL ES major version.
func IndexWidthFor(major int) IndexWidth {
	if major >= 3 {
		return Index32
	}
	return Index16
}

// IndexElement picks the narrowest index type that addresses every vertex:
// 8 bit up to 256 vertices, 16 bit up to 65536, 32 bit beyond when widest allows.
func (m *Mesh) IndexElement(widest IndexWidth) (IndexElement, error) {
	switch n := len(m.Vertices); {
	case n <= 1<<8:
		return IndexElement{Type: gl.UNSIGNED_BYTE, Size: 1}, nil
	case n <= 1<<16:
		return IndexElement{Type: gl.UNSIGNED_SHORT, Size: 2}, nil
	case widest >= Index32:
		return IndexElement{Type: gl.UNSIGNED_INT, Size: 4}, nil
	default:
		return IndexElement{}, fmt.Errorf("mesh %q with %d vertices, %d Byte indices: %w", m.Name, n, widest, ErrTooManyVertices)
	}
}

// PackIndices returns the index buffer contents in the given element width.
func (m *Mesh) PackIndices(el IndexElement) []byte {
	b := make([]byte, len(m.Indices)*el.Size)
	for i, idx := range m.Indices {
		switch el.Size {
		case 1:
			b[i] = uint8(idx)
		case 2:
			binary.LittleEndian.PutUint16(b[i*2:], uint16(idx))
		case 4:
			binary.LittleEndian.PutUint32(b[i*4:], idx)
		}
	}
	return b
}
