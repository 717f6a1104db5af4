package vector_math

import (
	"github.com/chewxy/math32"
)

type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: (v.Y * w.Z) - (v.Z * w.Y),
		Y: (v.Z * w.X) - (v.X * w.Z),
		Z: (v.X * w.Y) - (v.Y * w.X),
	}
}

func (v Vec3) Dot(w Vec3) float32 {
	return (v.X * w.X) + (v.Y * w.Y) + (v.Z * w.Z)
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{
		X: v.X - w.X,
		Y: v.Y - w.Y,
		Z: v.Z - w.Z,
	}
}

func (v Vec3) Abs() Vec3 {
	return Vec3{
		X: math32.Abs(v.X),
		Y: math32.Abs(v.Y),
		Z: math32.Abs(v.Z),
	}
}

func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Norm returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{
		X: v.X / l,
		Y: v.Y / l,
		Z: v.Z / l,
	}
}

func (v Vec3) Slice() []float32 {
	return []float32{v.X, v.Y, v.Z}
}
