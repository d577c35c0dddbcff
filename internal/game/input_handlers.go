package game

import (
	"log"

	"mini-voxel/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyBindings = map[glfw.Key]input.Key{
	glfw.KeyW:         input.KeyW,
	glfw.KeyA:         input.KeyA,
	glfw.KeyS:         input.KeyS,
	glfw.KeyD:         input.KeyD,
	glfw.KeySpace:     input.KeySpace,
	glfw.KeyLeftShift: input.KeyLeftShift,
	glfw.KeyG:         input.KeyExport,
	glfw.KeyEscape:    input.KeyRelease,
}

var buttonBindings = map[glfw.MouseButton]input.MouseButton{
	glfw.MouseButtonLeft:   input.MouseLeft,
	glfw.MouseButtonRight:  input.MouseRight,
	glfw.MouseButtonMiddle: input.MouseMiddle,
}

// setupInputHandlers routes window callbacks into the input state and
// keeps the renderer and camera in step with the framebuffer size.
func setupInputHandlers(g *Game) {
	window := g.window

	// Mouse position callback
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !g.captured {
			return
		}
		if g.firstMouse {
			g.lastX, g.lastY = xpos, ypos
			g.firstMouse = false
			return
		}
		dx := xpos - g.lastX
		// screen y grows downward
		dy := g.lastY - ypos
		g.lastX, g.lastY = xpos, ypos
		g.input.EmitMouseMove(dx, dy)
	})

	// Mouse button callback
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if !g.captured {
			g.setCaptured(true)
			return
		}
		if b, ok := buttonBindings[button]; ok {
			g.input.EmitMouseButton(b)
		}
	})

	// Handle keyboard actions
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k, ok := keyBindings[key]
		if !ok || action == glfw.Repeat {
			return
		}
		g.input.SetKey(k, action == glfw.Press)
	})

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		g.resize(fbWidth, fbHeight)
	})

	// Focus callback
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			g.setCaptured(false)
		}
	})
}

func (g *Game) setCaptured(captured bool) {
	g.captured = captured
	if captured {
		g.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		g.firstMouse = true
	} else {
		g.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := g.renderer.SetViewport(width, height); err != nil {
		log.Printf("Resize failed: %v", err)
	}
	g.camera.SetViewport(width, height)
}
