package model

import (
	"encoding/binary"
	"unsafe"

	vm "iso_gl/vector_math"

	"github.com/samber/lo"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

// Vertex is tightly packed, 7 float32 values = 28 Byte, no padding.
type Vertex struct {
	Pos   vm.Vec3 // 12 Byte (float32 * 3)
	Color vm.Vec4 // 16 Byte (float32 * 4, RGBA)
}

// Binding names the role a vertex attribute plays in the shader program. The
// renderer maps roles to the attribute locations it resolved.
type Binding int

const (
	BindPosition Binding = iota
	BindColor
)

func (b Binding) String() string {
	switch b {
	case BindPosition:
		return "position"
	case BindColor:
		return "color"
	default:
		return "unknown"
	}
}

// VertexAttribute describes one field of a vertex record as glVertexAttribPointer
// wants it.
type VertexAttribute struct {
	Binding    Binding
	Components int
	Type       gl.Enum
	Normalized bool
	Offset     int
}

// VertexLayout is the single description of how a Vertex sits in a GPU buffer.
// Both packing the vertex buffer and configuring attribute pointers read it.
type VertexLayout struct {
	Stride     int
	Attributes []VertexAttribute
}

// VertexFormat is derived from the Vertex struct itself, so changing a field
// changes stride and offsets in one place.
var VertexFormat = VertexLayout{
	Stride: int(unsafe.Sizeof(Vertex{})),
	Attributes: []VertexAttribute{
		{
			Binding:    BindPosition,
			Components: 3,
			Type:       gl.FLOAT,
			Offset:     int(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:    BindColor,
			Components: 4,
			Type:       gl.FLOAT,
			Offset:     int(unsafe.Offsetof(Vertex{}.Color)),
		},
	},
}

// Attribute returns the attribute description for the given binding.
func (l VertexLayout) Attribute(b Binding) (VertexAttribute, bool) {
	return lo.Find(l.Attributes, func(a VertexAttribute) bool {
		return a.Binding == b
	})
}

// ByteSize reports the buffer size needed for n vertices.
func (l VertexLayout) ByteSize(n int) int {
	return l.Stride * n
}

// Pack writes the vertices into a byte slice matching the layout. Offsets are
// taken from the attribute descriptions, so padding in the layout is kept zeroed.
func (l VertexLayout) Pack(vertices []Vertex) []byte {
	b := make([]byte, l.ByteSize(len(vertices)))
	for i, v := range vertices {
		rec := b[i*l.Stride : (i+1)*l.Stride]
		for _, a := range l.Attributes {
			var fields []float32
			switch a.Binding {
			case BindPosition:
				fields = v.Pos.Slice()
			case BindColor:
				fields = v.Color.Slice()
			}
			copy(rec[a.Offset:], f32.Bytes(binary.LittleEndian, fields[:a.Components]...))
		}
	}
	return b
}
