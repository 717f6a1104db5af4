package vector_math

import "github.com/chewxy/math32"

func NewUnitMat(s uint) Mat {
	um, _ := NewMat(s, s)
	for i := range um {
		um[i][i] = 1
	}
	return um
}

// NewRotation builds a 4x4 rotation of rad around axis (Rodrigues). The axis is
// normalized if needed; a zero angle yields the exact identity.
func NewRotation(rad float32, axis Vec3) Mat {
	ux := axis.X
	uy := axis.Y
	uz := axis.Z
	if (ux*ux)+(uy*uy)+(uz*uz) != 1 {
		norm := axis.Norm()
		ux = norm.X
		uy = norm.Y
		uz = norm.Z
	}
	cosT := math32.Cos(rad)
	sinT := math32.Sin(rad)
	rm := NewUnitMat(4)
	rm[0][0] = cosT + ((ux * ux) * (1 - cosT))
	rm[0][1] = (ux*uy)*(1-cosT) - (uz * sinT)
	rm[0][2] = (ux*uz)*(1-cosT) + (uy * sinT)

	rm[1][0] = (uy*ux)*(1-cosT) + (uz * sinT)
	rm[1][1] = cosT + (uy*uy)*(1-cosT)
	rm[1][2] = (uy*uz)*(1-cosT) - (ux * sinT)

	rm[2][0] = (uz*ux)*(1-cosT) - (uy * sinT)
	rm[2][1] = (uz*uy)*(1-cosT) + (ux * sinT)
	rm[2][2] = cosT + (uz*uz)*(1-cosT)

	return rm
}

func NewScale(s Vec3) Mat {
	sm := NewUnitMat(4)
	sm[0][0] = s.X
	sm[1][1] = s.Y
	sm[2][2] = s.Z
	return sm
}
