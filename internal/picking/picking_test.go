package picking

import (
	"testing"

	"mini-voxel/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 16, 100, 256} {
		for x := 0; x < n; x++ {
			pos := [3]int{x, n - 1 - x, x / 2}
			got := DecodeVoxel(EncodeVoxel(pos, n), n)
			require.Equal(t, pos, got, "chunk size %d", n)
		}
	}
}

func TestEncodeUsesFullRange(t *testing.T) {
	assert.Equal(t, [3]uint8{0, 85, 255}, EncodeVoxel([3]int{0, 1, 3}, 4))
	assert.Equal(t, [3]uint8{0, 0, 255}, EncodeVoxel([3]int{0, 0, 1}, 1))
}

func TestSampleDecode(t *testing.T) {
	_, _, ok := Sample{255, 255, 255, 0}.Decode(4)
	assert.False(t, ok)

	a, ok := EncodeEntry(2)
	require.True(t, ok)
	voxel, entry, ok := Sample{85, 170, 255, a}.Decode(4)
	require.True(t, ok)
	assert.Equal(t, [3]int{1, 2, 3}, voxel)
	assert.Equal(t, 2, entry)

	_, ok = EncodeEntry(MaxEntries)
	assert.False(t, ok)
	_, ok = EncodeEntry(-1)
	assert.False(t, ok)
}

func TestResolveFaceFromFront(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	face, hit, ok := ResolveFace(r, [3]int{0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, geometry.PositiveZ, face)
	assert.True(t, hit.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0.5}, 1e-4), "hit %v", hit)
}

func TestResolveFaceIgnoresOffQuadPlaneHits(t *testing.T) {
	// looking down onto the top face near its +X edge; the ray crosses the
	// +X plane first, but above the voxel
	origin := mgl32.Vec3{3, 3, 0}
	target := mgl32.Vec3{0.4, 0.5, 0}
	r := Ray{Origin: origin, Direction: target.Sub(origin).Normalize()}

	face, hit, ok := ResolveFace(r, [3]int{0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, geometry.PositiveY, face)
	assert.True(t, hit.ApproxEqualThreshold(target, 1e-4), "hit %v", hit)
}

func TestResolveFaceSideHit(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{5, 0.2, -0.1}, Direction: mgl32.Vec3{-1, 0, 0}}
	face, hit, ok := ResolveFace(r, [3]int{0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, geometry.PositiveX, face)
	assert.True(t, hit.ApproxEqualThreshold(mgl32.Vec3{0.5, 0.2, -0.1}, 1e-5))
}

func TestResolveFaceMiss(t *testing.T) {
	// passes beside the voxel
	r := Ray{Origin: mgl32.Vec3{2, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	_, _, ok := ResolveFace(r, [3]int{0, 0, 0})
	assert.False(t, ok)

	// voxel behind the camera
	r = Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}}
	_, _, ok = ResolveFace(r, [3]int{0, 0, 0})
	assert.False(t, ok)
}

func TestHitFaceRejectsBackFaces(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	_, ok := HitFace(r, [3]int{0, 0, 0}, geometry.NegativeZ)
	assert.False(t, ok)
	_, ok = HitFace(r, [3]int{0, 0, 0}, geometry.PositiveX)
	assert.False(t, ok, "parallel face")
}

func TestHitFaceQuadEdges(t *testing.T) {
	for _, x := range []float32{-0.5, 0.5} {
		r := Ray{Origin: mgl32.Vec3{x, 0, 3}, Direction: mgl32.Vec3{0, 0, -1}}
		_, ok := HitFace(r, [3]int{0, 0, 0}, geometry.PositiveZ)
		assert.True(t, ok, "edge x=%v", x)
	}
	r := Ray{Origin: mgl32.Vec3{0.5001, 0, 3}, Direction: mgl32.Vec3{0, 0, -1}}
	_, ok := HitFace(r, [3]int{0, 0, 0}, geometry.PositiveZ)
	assert.False(t, ok)
}

func TestRayTransform(t *testing.T) {
	model := mgl32.Translate3D(10, 0, 0)
	world := Ray{Origin: mgl32.Vec3{10, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	local := world.Transform(model.Inv())

	assert.True(t, local.Origin.ApproxEqual(mgl32.Vec3{0, 0, 5}))
	assert.True(t, local.Direction.ApproxEqual(mgl32.Vec3{0, 0, -1}))

	face, _, ok := ResolveFace(local, [3]int{0, 0, 0})
	require.True(t, ok)
	assert.Equal(t, geometry.PositiveZ, face)
}

func TestHighlightTransform(t *testing.T) {
	voxel := [3]int{1, 2, 3}
	center := mgl32.Vec3{1, 2, 3}
	for _, f := range geometry.Faces {
		m := HighlightTransform(voxel, f)

		up := m.Mul4x1(geometry.Up.Vec4(0)).Vec3()
		assert.True(t, up.ApproxEqualThreshold(f.Normal(), 1e-5), "face %s: up maps to %v", f, up)

		origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
		want := center.Add(f.Normal().Mul(0.5))
		assert.True(t, origin.ApproxEqualThreshold(want, 1e-5), "face %s: origin %v", f, origin)
	}
}
