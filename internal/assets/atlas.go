package assets

import (
	"image"
	"image/color"

	"mini-voxel/internal/world"

	"golang.org/x/image/draw"
)

var tileColors = [world.TextureCount]color.RGBA{
	world.TextureDirt:      {134, 96, 67, 255},
	world.TextureStone:     {125, 125, 125, 255},
	world.TextureGrassTop:  {95, 159, 53, 255},
	world.TextureGrassSide: {134, 96, 67, 255},
}

// rows of grass drawn over the top of the grass side tile
const grassSideFringe = 4

// ProceduralAtlas draws the block atlas in code, one speckled tile per
// texture. It is used when no atlas image is available.
func ProceduralAtlas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, world.AtlasSize, world.AtlasSize))
	for t := world.Texture(0); t < world.TextureCount; t++ {
		col := int(t) % world.AtlasColumns
		row := int(t) / world.AtlasColumns
		x0, y0 := col*world.AtlasTileSize, row*world.AtlasTileSize

		for y := 0; y < world.AtlasTileSize; y++ {
			for x := 0; x < world.AtlasTileSize; x++ {
				c := tileColors[t]
				if t == world.TextureGrassSide && y < grassSideFringe {
					c = tileColors[world.TextureGrassTop]
				}
				img.SetRGBA(x0+x, y0+y, speckle(c, x, y, int(t)))
			}
		}
	}
	return img
}

// speckle darkens c by a small deterministic amount per pixel.
func speckle(c color.RGBA, x, y, salt int) color.RGBA {
	h := uint32(x*73856093^y*19349663^salt*83492791) * 2654435761
	d := uint8(h >> 28) // 0..15
	return color.RGBA{sub(c.R, d), sub(c.G, d), sub(c.B, d), c.A}
}

func sub(v, d uint8) uint8 {
	if v < d {
		return 0
	}
	return v - d
}

// FitAtlas returns img as an RGBA image of exactly the atlas size, scaling
// with nearest-neighbor sampling when the source has another size.
func FitAtlas(img image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, world.AtlasSize, world.AtlasSize))
	if img.Bounds().Dx() == world.AtlasSize && img.Bounds().Dy() == world.AtlasSize {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
