package model

import vm "iso_gl/vector_math"

// NewDemoMesh returns the two-quad strip drawn by default: 6 vertices, 4 triangles.
// The quads share the edge between vertex 0 and 1.
func NewDemoMesh() *Mesh {

	// 6 * 28 = 168 Byte
	v := []Vertex{
		{ // 12 + 16 = 28 Byte [0]
			Pos:   vm.Vec3{X: 0, Y: -1, Z: 0},       // 12 Byte (float32 * 3, no padding)
			Color: vm.Vec4{X: 1, Y: 0, Z: 0, W: 1}, // 16 Byte (float32 * 4, no padding)
		},
		{ // [1]
			Pos:   vm.Vec3{X: 0, Y: 1, Z: 0},
			Color: vm.Vec4{X: 0, Y: 1, Z: 0, W: 1},
		},
		{ // [2]
			Pos:   vm.Vec3{X: -2, Y: 1, Z: 0},
			Color: vm.Vec4{X: 0, Y: 0, Z: 1, W: 1},
		},
		{ // [3]
			Pos:   vm.Vec3{X: -2, Y: -1, Z: 0},
			Color: vm.Vec4{X: 1, Y: 1, Z: 1, W: 1},
		},
		{ // [4]
			Pos:   vm.Vec3{X: 2, Y: -1, Z: 0},
			Color: vm.Vec4{X: 0, Y: 1, Z: 1, W: 1},
		},
		{ // [5]
			Pos:   vm.Vec3{X: 2, Y: 1, Z: 0},
			Color: vm.Vec4{X: 1, Y: 0, Z: 1, W: 1},
		},
	}

	id := []uint32{
		0, 1, 2, // left
		2, 3, 0,
		4, 5, 1, // right
		1, 0, 4,
	}

	return NewMesh("demo", v, id)
}
