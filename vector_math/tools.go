package vector_math

import "github.com/chewxy/math32"

// ToRad is a helper function to turn degree to radians
func ToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
