package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tileCenter(img *image.RGBA, t world.Texture) color.RGBA {
	col := int(t) % world.AtlasColumns
	row := int(t) / world.AtlasColumns
	half := world.AtlasTileSize / 2
	return img.RGBAAt(col*world.AtlasTileSize+half, row*world.AtlasTileSize+half)
}

func TestProceduralAtlas(t *testing.T) {
	img := ProceduralAtlas()
	assert.Equal(t, image.Rect(0, 0, world.AtlasSize, world.AtlasSize), img.Bounds())

	stone := tileCenter(img, world.TextureStone)
	grass := tileCenter(img, world.TextureGrassTop)
	assert.Greater(t, grass.G, grass.R, "grass top is green")
	assert.InDelta(t, int(stone.R), int(stone.G), 0, "stone is grey")
	assert.Equal(t, uint8(255), stone.A)

	// grass side: green fringe on top, dirt below
	base := world.TextureGrassSide
	x := (int(base) % world.AtlasColumns) * world.AtlasTileSize
	y := (int(base) / world.AtlasColumns) * world.AtlasTileSize
	top := img.RGBAAt(x+1, y)
	bottom := img.RGBAAt(x+1, y+world.AtlasTileSize-1)
	assert.Greater(t, top.G, top.R)
	assert.Greater(t, bottom.R, bottom.G)
}

func TestProceduralAtlasIsDeterministic(t *testing.T) {
	assert.Equal(t, ProceduralAtlas().Pix, ProceduralAtlas().Pix)
}

func TestFitAtlasScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, world.AtlasSize*2, world.AtlasSize*2))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	dst := FitAtlas(src)
	assert.Equal(t, world.AtlasSize, dst.Bounds().Dx())
	assert.Equal(t, color.RGBA{200, 200, 200, 200}, dst.RGBAAt(3, 3))

	same := FitAtlas(ProceduralAtlas())
	assert.Equal(t, ProceduralAtlas().Pix, same.Pix)
}

func TestDecodeAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, ProceduralAtlas()))
	require.NoError(t, f.Close())

	res := <-DecodeAsync(path)
	require.NoError(t, res.Err)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, world.AtlasSize, res.Image.Bounds().Dx())
}

func TestDecodeAsyncMissingFile(t *testing.T) {
	ch := DecodeAsync(filepath.Join(t.TempDir(), "missing.png"))
	res := <-ch
	require.Error(t, res.Err)
	assert.Nil(t, res.Image)

	_, open := <-ch
	assert.False(t, open, "channel closes after the single result")
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir)
	require.NoError(t, err)
	defer w.Close()

	_, pending := w.Poll()
	assert.False(t, pending)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.frag"), []byte("void main() {}"), 0o644))

	select {
	case name := <-w.Changed():
		assert.Equal(t, "main.frag", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
