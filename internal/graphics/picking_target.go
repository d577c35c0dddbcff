package graphics

import (
	"errors"
	"fmt"

	"mini-voxel/internal/picking"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrFramebufferIncomplete is returned when the picking framebuffer fails
// its completeness check.
var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

// pickingTarget is the off-screen RGBA8 + 16-bit depth framebuffer the
// picking pass renders into. It is reused for every pick.
type pickingTarget struct {
	fbo      uint32
	colorRBO uint32
	depthRBO uint32
	width    int32
	height   int32
}

func newPickingTarget(width, height int32) (*pickingTarget, error) {
	t := &pickingTarget{}
	if err := t.allocate(width, height); err != nil {
		t.release()
		return nil, err
	}
	return t, nil
}

func (t *pickingTarget) allocate(width, height int32) error {
	gl.GenFramebuffers(1, &t.fbo)
	gl.GenRenderbuffers(1, &t.colorRBO)
	gl.GenRenderbuffers(1, &t.depthRBO)
	if t.fbo == 0 || t.colorRBO == 0 || t.depthRBO == 0 {
		return fmt.Errorf("picking framebuffer: %w", ErrResourceCreation)
	}
	t.width, t.height = width, height

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, t.colorRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.colorRBO)

	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("picking framebuffer status 0x%x: %w", status, ErrFramebufferIncomplete)
	}
	return nil
}

// resize reallocates the attachments. On failure the target is left
// released and must not be used.
func (t *pickingTarget) resize(width, height int32) error {
	if width == t.width && height == t.height {
		return nil
	}
	t.release()
	if err := t.allocate(width, height); err != nil {
		t.release()
		return err
	}
	return nil
}

// center is the exact middle pixel of the target.
func (t *pickingTarget) center() (x, y int32) {
	return t.width / 2, t.height / 2
}

func (t *pickingTarget) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, t.width, t.height)
}

// readCenter blocks until prior GPU work is done and returns the center pixel.
func (t *pickingTarget) readCenter() picking.Sample {
	var px picking.Sample
	x, y := t.center()
	gl.ReadPixels(x, y, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

func (t *pickingTarget) release() {
	if t.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRBO)
		t.depthRBO = 0
	}
	if t.colorRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.colorRBO)
		t.colorRBO = 0
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
}
