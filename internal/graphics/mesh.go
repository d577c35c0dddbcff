package graphics

import (
	"errors"
	"fmt"

	"mini-voxel/internal/geometry"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"
)

// ErrResourceCreation is returned when the driver hands back a zero handle.
var ErrResourceCreation = errors.New("gpu resource creation failed")

// Mesh owns a vertex array object and its vertex buffer. Handles are only
// released by Destroy; using a Mesh after Destroy is undefined.
type Mesh struct {
	ID          uuid.UUID
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// VertexCount returns the number of vertices uploaded.
func (m *Mesh) VertexCount() int32 {
	return m.vertexCount
}

func newMesh(vertices []geometry.Vertex) (*Mesh, error) {
	m := &Mesh{ID: uuid.New(), vertexCount: int32(len(vertices))}

	// the VAO must be bound first so the buffer binding is recorded in it
	gl.GenVertexArrays(1, &m.vao)
	if m.vao == 0 {
		return nil, fmt.Errorf("vertex array: %w", ErrResourceCreation)
	}
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	if m.vbo == 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &m.vao)
		return nil, fmt.Errorf("vertex buffer: %w", ErrResourceCreation)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)

	if data := geometry.Bytes(vertices); len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	stride := int32(geometry.VertexSize)
	for _, a := range geometry.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, a.Offset)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

func (m *Mesh) draw() {
	if m.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
}

func (m *Mesh) release() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.vertexCount = 0
}
