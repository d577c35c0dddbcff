package world

import (
	"mini-voxel/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a tile index inside the block atlas.
type Texture int

const (
	TextureDirt Texture = iota
	TextureStone
	TextureGrassTop
	TextureGrassSide

	TextureCount
)

// Atlas layout: a square grid of square tiles, row-major from the top-left.
const (
	AtlasColumns  = 4
	AtlasTileSize = 16
	AtlasSize     = AtlasColumns * AtlasTileSize
)

// Region returns the tile's top-left corner and size in UV space.
func (t Texture) Region() (base, extent mgl32.Vec2) {
	col := int(t) % AtlasColumns
	row := int(t) / AtlasColumns
	step := float32(1) / AtlasColumns
	return mgl32.Vec2{float32(col) * step, float32(row) * step}, mgl32.Vec2{step, step}
}

// MapUV maps a [0,1] face coordinate into the tile.
func (t Texture) MapUV(uv mgl32.Vec2) mgl32.Vec2 {
	base, extent := t.Region()
	return mgl32.Vec2{base[0] + uv[0]*extent[0], base[1] + uv[1]*extent[1]}
}

// TextureSet selects a texture per face. Implemented by Uniform and
// SideTopBottom only.
type TextureSet interface {
	textureSet()
}

// Uniform uses one texture on every face.
type Uniform struct {
	Texture Texture
}

// SideTopBottom uses separate textures for +Y, -Y and the four sides.
type SideTopBottom struct {
	Side, Top, Bottom Texture
}

func (Uniform) textureSet()       {}
func (SideTopBottom) textureSet() {}

// TextureFor resolves the texture of a face.
func TextureFor(set TextureSet, face geometry.Face) Texture {
	switch s := set.(type) {
	case Uniform:
		return s.Texture
	case SideTopBottom:
		switch face {
		case geometry.PositiveY:
			return s.Top
		case geometry.NegativeY:
			return s.Bottom
		default:
			return s.Side
		}
	default:
		panic("world: unknown texture set")
	}
}
