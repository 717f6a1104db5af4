package renderer

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/mobile/gl"

	vm "iso_gl/vector_math"
)

// rotationDeg is the fixed rotation of the mesh around Z.
const rotationDeg = 0

// FrameTransform is the projection uniform for a frame: the fixed rotation
// around Z followed by a scale oscillating with elapsed seconds,
// X = 0.5 + 0.2*sin(t), Y = 0.5 + 0.2*cos(t).
func FrameTransform(elapsed float32) vm.Mat {
	m := vm.NewRotation(vm.ToRad(rotationDeg), vm.Vec3{Z: 1})
	m, _ = m.Scale(vm.Vec3{
		X: 0.5 + 0.2*math32.Sin(elapsed),
		Y: 0.5 + 0.2*math32.Cos(elapsed),
		Z: 1,
	})
	return m
}

// Draw renders one frame into viewport and returns the transform it uploaded.
// It keeps no state between calls, the same elapsed value gives the same frame.
func Draw(glctx gl.Context, prog *ShaderProgram, b *MeshBuffers, elapsed float32, viewport image.Rectangle, clear vm.Vec4) vm.Mat {
	glctx.Viewport(viewport.Min.X, viewport.Min.Y, viewport.Dx(), viewport.Dy())
	glctx.ClearColor(clear.RGBA())
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	m := FrameTransform(elapsed)
	glctx.UseProgram(prog.Program)
	glctx.UniformMatrix4fv(prog.ProjectionUniform, m.ColumnMajor())

	glctx.BindVertexArray(b.VAO)
	glctx.DrawElements(gl.TRIANGLES, b.IndexCount, b.IndexType, 0)
	glctx.BindVertexArray(gl.VertexArray{})
	return m
}
