package camera

import (
	"math"
	"testing"

	"mini-voxel/internal/geometry"
	"mini-voxel/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heldKeys map[input.Key]bool

func (h heldKeys) IsPressed(k input.Key) bool { return h[k] }

func TestNewDerivesDirection(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, -90, 0)
	assert.True(t, c.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6), "got %v", c.Direction)
}

func TestMoveDirsAreHorizontal(t *testing.T) {
	c := New(mgl32.Vec3{}, 30, 60)
	w := c.MoveDir(input.KeyW)
	a := c.MoveDir(input.KeyA)

	for _, k := range []input.Key{input.KeyW, input.KeyA, input.KeyS, input.KeyD} {
		d := c.MoveDir(k)
		assert.InDelta(t, 0, d[1], 1e-6)
		assert.InDelta(t, 1, d.Len(), 1e-5)
	}
	assert.InDelta(t, 0, w.Dot(a), 1e-6)
	assert.True(t, c.MoveDir(input.KeyS).ApproxEqual(w.Mul(-1)))
	assert.True(t, c.MoveDir(input.KeyD).ApproxEqual(a.Mul(-1)))
	assert.Equal(t, geometry.Up, c.MoveDir(input.KeySpace))
}

func TestMoveLeftWhenFacingNegativeZ(t *testing.T) {
	c := New(mgl32.Vec3{}, -90, 0)
	assert.True(t, c.MoveDir(input.KeyA).ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-6))
}

func TestUpdateMovement(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, -90, 0)
	c.Update(0.5, heldKeys{input.KeyW: true})
	assert.InDelta(t, 5-0.5*DefaultSpeed, c.Position[2], 1e-5)

	// diagonal movement is not normalized
	c = New(mgl32.Vec3{}, -90, 0)
	c.Update(1, heldKeys{input.KeyW: true, input.KeyD: true})
	assert.InDelta(t, DefaultSpeed*math.Sqrt2, c.Position.Len(), 1e-4)

	c = New(mgl32.Vec3{}, 0, 0)
	c.Update(1, heldKeys{input.KeyW: true, input.KeyS: true})
	assert.InDelta(t, 0, c.Position.Len(), 1e-5)
}

func TestUpdateDrainsLooks(t *testing.T) {
	c := New(mgl32.Vec3{}, 0, 0)
	c.PushLook(10, 0)
	c.PushLook(5, 4)
	c.Update(0, heldKeys{})

	assert.InDelta(t, 15*DefaultSensitivity, c.Yaw, 1e-4)
	assert.InDelta(t, 4*DefaultSensitivity, c.Pitch, 1e-4)
	assert.InDelta(t, 1, c.Direction.Len(), 1e-5)

	before := c.Direction
	c.Update(0, heldKeys{})
	assert.Equal(t, before, c.Direction)
}

func TestLookOverflowIsNotDropped(t *testing.T) {
	c := New(mgl32.Vec3{}, 0, 0)
	for i := 0; i < lookQueueSize*3; i++ {
		c.PushLook(1, 0)
	}
	c.Update(0, heldKeys{})
	assert.InDelta(t, float64(lookQueueSize*3)*DefaultSensitivity, c.Yaw, 1e-2)

	_, ok := c.drainLooks()
	assert.False(t, ok)
}

func TestPitchAlwaysClamped(t *testing.T) {
	c := New(mgl32.Vec3{}, 0, 0)
	for _, dy := range []float64{1e6, -3e6, 500, 89.9 / DefaultSensitivity, -1e9} {
		c.PushLook(0, dy)
		c.Update(0, heldKeys{})
		assert.LessOrEqual(t, c.Pitch, float32(MaxPitch))
		assert.GreaterOrEqual(t, c.Pitch, float32(-MaxPitch))
		assert.Greater(t, math.Abs(float64(c.Direction[0]))+math.Abs(float64(c.Direction[2])), 0.0)
	}
}

func TestMatrixProjectsTarget(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, -90, 0)
	clip := c.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	require.Greater(t, clip[3], float32(0))
	ndc := clip.Vec3().Mul(1 / clip[3])

	assert.InDelta(t, 0, ndc[0], 1e-5)
	assert.InDelta(t, 0, ndc[1], 1e-5)
	assert.Greater(t, ndc[2], float32(-1))
	assert.Less(t, ndc[2], float32(1))

	want := mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100).
		Mul4(mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 5}.Add(c.Direction), mgl32.Vec3{0, 1, 0}))
	assert.True(t, want.ApproxEqual(c.Matrix()))
}

func TestSetViewport(t *testing.T) {
	c := New(mgl32.Vec3{}, 0, 0)
	c.SetViewport(800, 400)
	assert.Equal(t, float32(2), c.Aspect)
	c.SetViewport(0, 400)
	assert.Equal(t, float32(2), c.Aspect)
}
