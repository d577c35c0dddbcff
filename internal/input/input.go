package input

import "sync"

// Key is a logical key, independent of the windowing backend.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyLeftShift
	KeyExport
	KeyRelease

	keyCount // sentinel for array sizing
)

// MovementKeys are the keys the camera polls every update.
var MovementKeys = [...]Key{KeyW, KeyA, KeyS, KeyD, KeySpace, KeyLeftShift}

// MouseButton identifies a pressed mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// State tracks held keys and fans mouse events out to subscribers. It is
// written by window callbacks and read by the update loop.
type State struct {
	mu sync.RWMutex

	held        [keyCount]bool
	justPressed [keyCount]bool

	moveCbs   []func(dx, dy float64)
	buttonCbs []func(b MouseButton)
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{}
}

// SetKey records a key transition. Unknown keys are ignored.
func (s *State) SetKey(k Key, pressed bool) {
	if k < 0 || k >= keyCount {
		return
	}
	s.mu.Lock()
	if pressed && !s.held[k] {
		s.justPressed[k] = true
	}
	s.held[k] = pressed
	s.mu.Unlock()
}

// IsPressed reports whether k is currently held.
func (s *State) IsPressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.held[k]
}

// JustPressed reports whether k went down since the last PostUpdate.
func (s *State) JustPressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.justPressed[k]
}

// PostUpdate clears edge flags. Call once at the end of each frame.
func (s *State) PostUpdate() {
	s.mu.Lock()
	clear(s.justPressed[:])
	s.mu.Unlock()
}

// OnMouseMove subscribes to relative mouse movement.
func (s *State) OnMouseMove(cb func(dx, dy float64)) {
	s.mu.Lock()
	s.moveCbs = append(s.moveCbs, cb)
	s.mu.Unlock()
}

// OnMouseButton subscribes to mouse button presses.
func (s *State) OnMouseButton(cb func(b MouseButton)) {
	s.mu.Lock()
	s.buttonCbs = append(s.buttonCbs, cb)
	s.mu.Unlock()
}

// EmitMouseMove delivers a relative movement to every subscriber.
func (s *State) EmitMouseMove(dx, dy float64) {
	s.mu.RLock()
	cbs := s.moveCbs
	s.mu.RUnlock()
	for _, cb := range cbs {
		cb(dx, dy)
	}
}

// EmitMouseButton delivers a button press to every subscriber.
func (s *State) EmitMouseButton(b MouseButton) {
	s.mu.RLock()
	cbs := s.buttonCbs
	s.mu.RUnlock()
	for _, cb := range cbs {
		cb(b)
	}
}
