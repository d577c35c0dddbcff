package geometry

import "github.com/go-gl/mathgl/mgl32"

// quad corners in the face's local (s, t) parametrization, two CCW triangles
// when seen from outside
var quadCorners = [6][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

// appendQuad emits the two triangles of a face quad. center and half are
// combined per axis: corner = center + scale * (normal*0.5 + s*u*0.5 + t*v*0.5).
func appendQuad(dst []Vertex, face Face, center, scale mgl32.Vec3, origin mgl32.Vec3) []Vertex {
	n := face.Normal()
	u, v := face.Basis()
	for _, c := range quadCorners {
		s, t := c[0], c[1]
		local := n.Mul(0.5).Add(u.Mul(s * 0.5)).Add(v.Mul(t * 0.5))
		dst = append(dst, Vertex{
			Position:    center.Add(mulElem(local, scale)),
			Normal:      n,
			TexCoord:    mgl32.Vec2{(s + 1) / 2, (1 - t) / 2},
			VoxelOrigin: origin,
		})
	}
	return dst
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Cube builds a cube centered at the origin with per-axis scale. A zero
// component yields degenerate triangles, which are kept.
func Cube(scale mgl32.Vec3) []Vertex {
	vertices := make([]Vertex, 0, len(Faces)*6)
	for _, f := range Faces {
		vertices = appendQuad(vertices, f, mgl32.Vec3{}, scale, mgl32.Vec3{})
	}
	return vertices
}

// SelectionRing builds a square outline in the XZ plane from four thin boxes.
// scale is the ring's edge length, width the thickness of each bar.
func SelectionRing(scale, width float32) []Vertex {
	half := scale / 2
	bars := [4]struct {
		offset mgl32.Vec3
		size   mgl32.Vec3
	}{
		{mgl32.Vec3{half, 0, 0}, mgl32.Vec3{width, width, scale + width}},
		{mgl32.Vec3{-half, 0, 0}, mgl32.Vec3{width, width, scale + width}},
		{mgl32.Vec3{0, 0, half}, mgl32.Vec3{scale + width, width, width}},
		{mgl32.Vec3{0, 0, -half}, mgl32.Vec3{scale + width, width, width}},
	}

	vertices := make([]Vertex, 0, 4*len(Faces)*6)
	for _, b := range bars {
		for _, v := range Cube(b.size) {
			v.Position = v.Position.Add(b.offset)
			vertices = append(vertices, v)
		}
	}
	return vertices
}

// VoxelFace builds the quad for one face of the unit voxel at pos.
func VoxelFace(face Face, pos [3]int) []Vertex {
	return AppendVoxelFace(make([]Vertex, 0, 6), face, pos)
}

// AppendVoxelFace is VoxelFace writing into dst.
func AppendVoxelFace(dst []Vertex, face Face, pos [3]int) []Vertex {
	origin := mgl32.Vec3{float32(pos[0]), float32(pos[1]), float32(pos[2])}
	return appendQuad(dst, face, origin, mgl32.Vec3{1, 1, 1}, origin)
}
