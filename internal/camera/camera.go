package camera

import (
	"math"
	"sync"

	"mini-voxel/internal/geometry"
	"mini-voxel/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultSpeed       = 2.568 // units per second per held key
	DefaultSensitivity = 0.687 // degrees per unit of mouse movement
	MaxPitch           = 89.9

	DefaultFOV    = 45.0
	DefaultAspect = 6.0 / 4.0
	DefaultNear   = 0.1
	DefaultFar    = 100.0

	lookQueueSize = 256
)

// KeyState answers whether a key is currently held.
type KeyState interface {
	IsPressed(k input.Key) bool
}

type look struct{ dx, dy float64 }

// Camera is a first-person camera. Direction is always derived from Yaw
// and Pitch (degrees). Look deltas are queued by PushLook and consumed by
// Update.
type Camera struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Yaw       float32
	Pitch     float32

	Speed       float32
	Sensitivity float32
	FOV         float32
	Aspect      float32
	Near        float32
	Far         float32

	looks chan look

	// deltas that did not fit in looks; drained together with it
	spillMu sync.Mutex
	spill   look
	spilled bool
}

// New creates a camera at position looking along yaw/pitch.
func New(position mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		Yaw:         yaw,
		Pitch:       clampPitch(pitch),
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		FOV:         DefaultFOV,
		Aspect:      DefaultAspect,
		Near:        DefaultNear,
		Far:         DefaultFar,
		looks:       make(chan look, lookQueueSize),
	}
	c.recomputeDirection()
	return c
}

// PushLook queues a relative mouse movement. It never blocks and never
// drops input; it may be called from an event callback.
func (c *Camera) PushLook(dx, dy float64) {
	select {
	case c.looks <- look{dx, dy}:
	default:
		c.spillMu.Lock()
		c.spill.dx += dx
		c.spill.dy += dy
		c.spilled = true
		c.spillMu.Unlock()
	}
}

// drainLooks sums every pending delta. ok is false when nothing was queued.
func (c *Camera) drainLooks() (sum look, ok bool) {
	for {
		select {
		case l := <-c.looks:
			sum.dx += l.dx
			sum.dy += l.dy
			ok = true
		default:
			c.spillMu.Lock()
			if c.spilled {
				sum.dx += c.spill.dx
				sum.dy += c.spill.dy
				c.spill = look{}
				c.spilled = false
				ok = true
			}
			c.spillMu.Unlock()
			return sum, ok
		}
	}
}

// MoveDir returns the movement direction for key. W/A/S/D stay in the
// horizontal plane regardless of pitch.
func (c *Camera) MoveDir(k input.Key) mgl32.Vec3 {
	switch k {
	case input.KeyW:
		return mgl32.Vec3{c.Direction[0], 0, c.Direction[2]}.Normalize()
	case input.KeyA:
		return geometry.Up.Cross(c.MoveDir(input.KeyW))
	case input.KeyS:
		return c.MoveDir(input.KeyW).Mul(-1)
	case input.KeyD:
		return c.MoveDir(input.KeyA).Mul(-1)
	case input.KeySpace:
		return geometry.Up
	case input.KeyLeftShift:
		return geometry.Up.Mul(-1)
	default:
		return mgl32.Vec3{}
	}
}

// Update moves the camera for every held key and applies queued look
// deltas. Simultaneous keys add up, so diagonals are faster.
func (c *Camera) Update(dt float32, keys KeyState) {
	for _, k := range input.MovementKeys {
		if keys.IsPressed(k) {
			c.Position = c.Position.Add(c.MoveDir(k).Mul(dt * c.Speed))
		}
	}

	sum, ok := c.drainLooks()
	if !ok {
		return
	}
	c.Yaw += c.Sensitivity * float32(sum.dx)
	c.Pitch = clampPitch(c.Pitch + c.Sensitivity*float32(sum.dy))
	c.recomputeDirection()
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}

func (c *Camera) recomputeDirection() {
	pitch := float64(mgl32.DegToRad(c.Pitch))
	yaw := float64(mgl32.DegToRad(c.Yaw))
	xz := math.Cos(pitch)
	c.Direction = mgl32.Vec3{
		float32(xz * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(xz * math.Sin(yaw)),
	}
}

// Projection returns the perspective projection.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// View returns the look-at view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Direction), geometry.Up)
}

// Matrix returns projection * view.
// TODO: cache until Position, Direction or Aspect change.
func (c *Camera) Matrix() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// SetViewport updates the aspect ratio from a framebuffer size.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}
