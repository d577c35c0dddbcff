package world

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"mini-voxel/internal/geometry"
	"mini-voxel/internal/profiling"
)

// ChunkSize is the edge length of the cubic chunk grid.
const ChunkSize = 4

// ErrOutOfBounds is returned when a position lies outside [0, ChunkSize).
var ErrOutOfBounds = errors.New("position out of chunk bounds")

// Chunk is a fixed-size cubic grid of blocks. It does not cache geometry:
// callers rebuild their mesh from Vertices after every Set.
type Chunk struct {
	blocks [ChunkSize][ChunkSize][ChunkSize]Block
}

// NewChunk creates a chunk where each cell is Dirt or Air with equal odds.
func NewChunk(rng *rand.Rand) *Chunk {
	c := &Chunk{}
	forEachPosition(func(p [3]int) {
		if rng.IntN(2) == 0 {
			c.blocks[p[0]][p[1]][p[2]] = BlockDirt
		}
	})
	return c
}

// NewFilledChunk creates a chunk with every cell set to b.
func NewFilledChunk(b Block) *Chunk {
	c := &Chunk{}
	forEachPosition(func(p [3]int) {
		c.blocks[p[0]][p[1]][p[2]] = b
	})
	return c
}

// forEachPosition visits every grid position with x outermost and z innermost.
func forEachPosition(fn func(p [3]int)) {
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				fn([3]int{x, y, z})
			}
		}
	}
}

// InBounds reports whether every coordinate of pos is inside the grid.
func InBounds(pos [3]int) bool {
	for _, c := range pos {
		if c < 0 || c >= ChunkSize {
			return false
		}
	}
	return true
}

// Set overwrites the cell at pos.
func (c *Chunk) Set(pos [3]int, t BlockType) error {
	if !InBounds(pos) {
		return fmt.Errorf("set %v: %w", pos, ErrOutOfBounds)
	}
	c.blocks[pos[0]][pos[1]][pos[2]] = Block{Type: t}
	return nil
}

// Sample returns the block at pos. ok is false when pos is outside the grid.
func (c *Chunk) Sample(pos [3]int) (b Block, ok bool) {
	if !InBounds(pos) {
		return Block{}, false
	}
	return c.blocks[pos[0]][pos[1]][pos[2]], true
}

// IsSolid reports whether pos holds a solid block. Absent cells are not solid.
func (c *Chunk) IsSolid(pos [3]int) bool {
	b, ok := c.Sample(pos)
	return ok && b.IsSolid()
}

// VisibleFaces lists the faces of a solid cell whose neighbor is Air or
// outside the grid. Non-solid or absent cells have no visible faces.
func (c *Chunk) VisibleFaces(pos [3]int) []geometry.Face {
	if !c.IsSolid(pos) {
		return nil
	}
	var faces []geometry.Face
	for _, f := range geometry.Faces {
		off := f.NeighborOffset()
		neighbor := [3]int{pos[0] + off[0], pos[1] + off[1], pos[2] + off[2]}
		if !c.IsSolid(neighbor) {
			faces = append(faces, f)
		}
	}
	return faces
}

// Vertices builds the chunk mesh: one textured quad per visible face, in
// increasing x, y, z order.
func (c *Chunk) Vertices() []geometry.Vertex {
	defer profiling.Track("world.Chunk.Vertices")()

	var vertices []geometry.Vertex
	forEachPosition(func(p [3]int) {
		b := c.blocks[p[0]][p[1]][p[2]]
		set, ok := b.Textures()
		if !ok {
			return
		}
		for _, f := range c.VisibleFaces(p) {
			start := len(vertices)
			vertices = geometry.AppendVoxelFace(vertices, f, p)
			tex := TextureFor(set, f)
			for i := start; i < len(vertices); i++ {
				vertices[i].TexCoord = tex.MapUV(vertices[i].TexCoord)
			}
		}
	})
	return vertices
}
