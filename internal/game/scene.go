package game

import (
	"fmt"
	"log"

	"mini-voxel/internal/config"
	"mini-voxel/internal/geometry"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/input"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// meshStore creates and releases GPU meshes. Implemented by
// *graphics.Renderer.
type meshStore interface {
	CreateMesh(vertices []geometry.Vertex) (*graphics.Mesh, error)
	DestroyMesh(m *graphics.Mesh)
}

// Scene is the chunk together with the mesh built from it.
type Scene struct {
	Chunk     *world.Chunk
	Transform mgl32.Mat4

	store       meshStore
	mesh        *graphics.Mesh
	fingerprint uint64
}

// NewScene wraps chunk; call Rebuild before submitting it.
func NewScene(chunk *world.Chunk, store meshStore) *Scene {
	return &Scene{Chunk: chunk, Transform: mgl32.Ident4(), store: store}
}

// Rebuild regenerates the chunk mesh. The upload is skipped when the
// vertex data is unchanged; uploaded reports whether a new mesh was made.
func (s *Scene) Rebuild() (uploaded bool, err error) {
	vertices := s.Chunk.Vertices()
	fp := geometry.Fingerprint(vertices)
	if s.mesh != nil && fp == s.fingerprint {
		return false, nil
	}

	mesh, err := s.store.CreateMesh(vertices)
	if err != nil {
		return false, fmt.Errorf("rebuild chunk mesh: %w", err)
	}
	if s.mesh != nil {
		s.store.DestroyMesh(s.mesh)
	}
	s.mesh, s.fingerprint = mesh, fp
	return true, nil
}

// Submit queues the chunk mesh into task.
func (s *Scene) Submit(task *graphics.RenderTask) {
	if s.mesh == nil {
		return
	}
	task.PushTransformed(s.mesh, s.Transform)
}

// Apply edits the chunk for a click on sel: left removes the voxel, right
// places Dirt against the selected face. changed is false when the click
// had nothing to do.
func (s *Scene) Apply(sel graphics.Selection, button input.MouseButton) (changed bool, err error) {
	switch button {
	case input.MouseLeft:
		if !s.Chunk.IsSolid(sel.Voxel) {
			return false, nil
		}
		if err := s.Chunk.Set(sel.Voxel, world.BlockTypeAir); err != nil {
			return false, err
		}
		if config.GetDebug() {
			log.Printf("Removed block at %v", sel.Voxel)
		}
		return true, nil

	case input.MouseRight:
		target := sel.Neighbor()
		if s.Chunk.IsSolid(target) {
			return false, nil
		}
		if err := s.Chunk.Set(target, world.BlockTypeDirt); err != nil {
			return false, err
		}
		if config.GetDebug() {
			log.Printf("Placed %v at %v (%v face of %v)", world.BlockTypeDirt, target, sel.Face, sel.Voxel)
		}
		return true, nil
	}
	return false, nil
}

// Vertices returns the chunk's current triangle list.
func (s *Scene) Vertices() []geometry.Vertex {
	return s.Chunk.Vertices()
}

// Release destroys the chunk mesh.
func (s *Scene) Release() {
	if s.mesh != nil {
		s.store.DestroyMesh(s.mesh)
		s.mesh = nil
	}
}
