package geometry

import "github.com/go-gl/mathgl/mgl32"

// Face is one of the six axis-aligned sides of a voxel.
type Face int

const (
	PositiveX Face = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

// Faces lists every face in a fixed order.
var Faces = [...]Face{PositiveX, NegativeX, PositiveY, NegativeY, PositiveZ, NegativeZ}

// Up is the world up direction.
var Up = mgl32.Vec3{0, 1, 0}

var faceNormals = [...]mgl32.Vec3{
	PositiveX: {1, 0, 0},
	NegativeX: {-1, 0, 0},
	PositiveY: {0, 1, 0},
	NegativeY: {0, -1, 0},
	PositiveZ: {0, 0, 1},
	NegativeZ: {0, 0, -1},
}

// Side faces use an orthogonal that makes Normal x Orthogonal point up, so
// textures stand upright.
var faceOrthogonals = [...]mgl32.Vec3{
	PositiveX: {0, 0, -1},
	NegativeX: {0, 0, 1},
	PositiveY: {1, 0, 0},
	NegativeY: {1, 0, 0},
	PositiveZ: {1, 0, 0},
	NegativeZ: {-1, 0, 0},
}

var faceNames = [...]string{
	PositiveX: "+X",
	NegativeX: "-X",
	PositiveY: "+Y",
	NegativeY: "-Y",
	PositiveZ: "+Z",
	NegativeZ: "-Z",
}

// Normal returns the outward unit normal.
func (f Face) Normal() mgl32.Vec3 {
	return faceNormals[f]
}

// NeighborOffset returns the grid step to the adjacent cell across this face.
func (f Face) NeighborOffset() [3]int {
	n := faceNormals[f]
	return [3]int{int(n[0]), int(n[1]), int(n[2])}
}

// Orthogonal returns the first in-plane basis vector (u).
func (f Face) Orthogonal() mgl32.Vec3 {
	return faceOrthogonals[f]
}

// Basis returns the orthonormal in-plane basis (u, v) with v = normal x u.
func (f Face) Basis() (u, v mgl32.Vec3) {
	u = f.Orthogonal()
	return u, f.Normal().Cross(u)
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	return f ^ 1
}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "invalid"
	}
	return faceNames[f]
}
