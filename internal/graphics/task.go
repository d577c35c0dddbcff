package graphics

import "github.com/go-gl/mathgl/mgl32"

// TaskEntry is one draw in a RenderTask.
type TaskEntry struct {
	Mesh      *Mesh
	Transform mgl32.Mat4
}

// RenderTask is the per-frame list of meshes to draw, in order. It does not
// own the meshes; they must outlive the task.
type RenderTask struct {
	entries []TaskEntry
}

// Push adds a mesh drawn with the identity transform.
func (t *RenderTask) Push(m *Mesh) {
	t.entries = append(t.entries, TaskEntry{Mesh: m, Transform: mgl32.Ident4()})
}

// PushTransformed adds a mesh drawn with a model matrix.
func (t *RenderTask) PushTransformed(m *Mesh, transform mgl32.Mat4) {
	t.entries = append(t.entries, TaskEntry{Mesh: m, Transform: transform})
}

// Entries returns the queued draws.
func (t *RenderTask) Entries() []TaskEntry {
	return t.entries
}

// Len returns the number of queued draws.
func (t *RenderTask) Len() int {
	return len(t.entries)
}
