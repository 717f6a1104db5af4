package vector_math

// Vec4 is used for RGBA colors, X..W map to R..A.
type Vec4 struct {
	X, Y, Z, W float32
}

func NewColor(r, g, b, a float32) Vec4 {
	return Vec4{X: r, Y: g, Z: b, W: a}
}

func (v Vec4) RGBA() (float32, float32, float32, float32) {
	return v.X, v.Y, v.Z, v.W
}

func (v Vec4) Slice() []float32 {
	return []float32{v.X, v.Y, v.Z, v.W}
}
