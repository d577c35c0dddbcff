package geometry

import (
	"unsafe"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout uploaded to the GPU. Fields are float32
// only, so the struct is tightly packed.
type Vertex struct {
	Position    mgl32.Vec3
	Normal      mgl32.Vec3
	TexCoord    mgl32.Vec2
	VoxelOrigin mgl32.Vec3 // integer grid position of the owning voxel, not normalized
}

// VertexSize is the byte stride of one Vertex.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Attribute describes one float attribute inside Vertex.
type Attribute struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// Attributes lists the vertex layout in shader location order.
var Attributes = [...]Attribute{
	{Location: 0, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
	{Location: 1, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Normal)},
	{Location: 2, Components: 2, Offset: unsafe.Offsetof(Vertex{}.TexCoord)},
	{Location: 3, Components: 3, Offset: unsafe.Offsetof(Vertex{}.VoxelOrigin)},
}

// Bytes views the vertex slice as raw bytes without copying.
func Bytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*VertexSize)
}

// Fingerprint hashes the exact vertex bytes. Two lists with the same order
// and values have the same fingerprint.
func Fingerprint(vertices []Vertex) uint64 {
	return xxhash.Sum64(Bytes(vertices))
}
