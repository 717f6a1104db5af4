package stl

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"iso_gl/model"
	"iso_gl/vector_math"

	"github.com/chewxy/math32"
	"github.com/golang/glog"
)

const (
	headerSize   = 80
	countSize    = 4
	triangleSize = 50 // normal + 3 vertices (12 float32) + 2 Byte attribute count
)

// ReadStlFile reads a binary STL file into a mesh fitted to the clip volume.
// Facet corners are colored by the absolute value of the facet normal.
func ReadStlFile(path string) (*model.Mesh, error) {
	glog.Infof("Reading stl file %s", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl file: %w", err)
	}
	return Decode(path, b)
}

// Decode parses the contents of a binary STL file.
func Decode(name string, b []byte) (*model.Mesh, error) {
	if len(b) < headerSize+countSize {
		return nil, fmt.Errorf("stl %s: file too short (%d Byte)", name, len(b))
	}
	header := b[:headerSize]
	tCnt := binary.LittleEndian.Uint32(b[headerSize : headerSize+countSize])
	body := b[headerSize+countSize:]
	if uint64(len(body)) < uint64(tCnt)*triangleSize {
		return nil, fmt.Errorf(
			"stl %s: header announces %d triangles but only %d Byte of triangle data follow",
			name, tCnt, len(body),
		)
	}
	glog.Infof("Successfully read stl file, Header: '%s', Triangle Count: %d, Triangle memory size: %d KiB",
		trimHeader(header), tCnt, len(body)/1024)
	return toMesh(name, body, tCnt), nil
}

func toMesh(name string, bytes []byte, triangleCnt uint32) *model.Mesh {
	positions := make([]vector_math.Vec3, 0, triangleCnt*3)
	colors := make([]vector_math.Vec4, 0, triangleCnt)

	for t := uint32(0); t < triangleCnt; t++ {
		i := int(t) * triangleSize
		normal := toVec3(bytes[i : i+12])
		v1 := toVec3(bytes[i+12 : i+24])
		v2 := toVec3(bytes[i+24 : i+36])
		v3 := toVec3(bytes[i+36 : i+48])
		if normal.Len() == 0 {
			// some exporters leave the facet normal empty
			normal = v2.Sub(v1).Cross(v3.Sub(v1)).Norm()
		}
		c := normal.Abs()
		colors = append(colors, vector_math.NewColor(c.X, c.Y, c.Z, 1))
		positions = append(positions, v1, v2, v3)
	}
	fitToClipVolume(positions)

	// Corners shared by facets of the same color become one vertex.
	v := make([]model.Vertex, 0, len(positions))
	id := make([]uint32, 0, len(positions))
	seen := make(map[model.Vertex]uint32, len(positions))
	for i, p := range positions {
		vert := model.Vertex{Pos: p, Color: colors[i/3]}
		idx, ok := seen[vert]
		if !ok {
			idx = uint32(len(v))
			seen[vert] = idx
			v = append(v, vert)
		}
		id = append(id, idx)
	}
	glog.V(1).Infof("stl %s: %d facet corners merged into %d vertices", name, len(positions), len(v))

	return model.NewMesh(name, v, id)
}

// fitToClipVolume centers the positions on the origin and scales them
// uniformly so the largest extent spans [-1, 1].
func fitToClipVolume(positions []vector_math.Vec3) {
	if len(positions) == 0 {
		return
	}
	minP, maxP := positions[0], positions[0]
	for _, p := range positions[1:] {
		minP = vector_math.Vec3{X: math32.Min(minP.X, p.X), Y: math32.Min(minP.Y, p.Y), Z: math32.Min(minP.Z, p.Z)}
		maxP = vector_math.Vec3{X: math32.Max(maxP.X, p.X), Y: math32.Max(maxP.Y, p.Y), Z: math32.Max(maxP.Z, p.Z)}
	}
	center := vector_math.Vec3{X: (minP.X + maxP.X) / 2, Y: (minP.Y + maxP.Y) / 2, Z: (minP.Z + maxP.Z) / 2}
	half := math32.Max(maxP.X-minP.X, math32.Max(maxP.Y-minP.Y, maxP.Z-minP.Z)) / 2
	scale := float32(1)
	if half > 0 {
		scale = 1 / half
	}
	for i, p := range positions {
		d := p.Sub(center)
		positions[i] = vector_math.Vec3{X: d.X * scale, Y: d.Y * scale, Z: d.Z * scale}
	}
}

func trimHeader(h []byte) string {
	for i, c := range h {
		if c == 0 {
			return string(h[:i])
		}
	}
	return string(h)
}

func toVec3(bytes []byte) vector_math.Vec3 {
	return vector_math.Vec3{
		X: toFloat32(bytes[:4]),
		Y: toFloat32(bytes[4:8]),
		Z: toFloat32(bytes[8:12]),
	}
}

func toFloat32(bytes []byte) float32 {
	bits := binary.LittleEndian.Uint32(bytes)
	return math.Float32frombits(bits)
}
