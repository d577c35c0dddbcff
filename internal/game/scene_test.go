package game

import (
	"errors"
	"testing"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/geometry"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/input"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore hands out placeholder meshes without touching the GPU.
type fakeStore struct {
	created   int
	destroyed int
	lastCount int
	fail      error
}

func (f *fakeStore) CreateMesh(vertices []geometry.Vertex) (*graphics.Mesh, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.created++
	f.lastCount = len(vertices)
	return &graphics.Mesh{ID: uuid.New()}, nil
}

func (f *fakeStore) DestroyMesh(*graphics.Mesh) {
	f.destroyed++
}

func TestSceneRebuildSkipsUnchangedGeometry(t *testing.T) {
	store := &fakeStore{}
	s := NewScene(world.NewFilledChunk(world.BlockDirt), store)

	uploaded, err := s.Rebuild()
	require.NoError(t, err)
	assert.True(t, uploaded)

	uploaded, err = s.Rebuild()
	require.NoError(t, err)
	assert.False(t, uploaded, "same vertices are not uploaded twice")
	assert.Equal(t, 1, store.created)
	assert.Equal(t, 0, store.destroyed)

	require.NoError(t, s.Chunk.Set([3]int{0, 0, 0}, world.BlockTypeAir))
	uploaded, err = s.Rebuild()
	require.NoError(t, err)
	assert.True(t, uploaded)
	assert.Equal(t, 2, store.created)
	assert.Equal(t, 1, store.destroyed, "old mesh released after the new one exists")

	s.Release()
	assert.Equal(t, 2, store.destroyed)
}

func TestSceneRebuildKeepsMeshOnFailure(t *testing.T) {
	store := &fakeStore{}
	s := NewScene(world.NewFilledChunk(world.BlockDirt), store)
	_, err := s.Rebuild()
	require.NoError(t, err)

	require.NoError(t, s.Chunk.Set([3]int{1, 1, 1}, world.BlockTypeAir))
	store.fail = graphics.ErrResourceCreation
	_, err = s.Rebuild()
	require.ErrorIs(t, err, graphics.ErrResourceCreation)
	assert.Equal(t, 0, store.destroyed)

	var task graphics.RenderTask
	s.Submit(&task)
	assert.Equal(t, 1, task.Len())
}

func TestSceneSubmitUsesTransform(t *testing.T) {
	s := NewScene(world.NewFilledChunk(world.BlockDirt), &fakeStore{})
	var task graphics.RenderTask
	s.Submit(&task)
	assert.Zero(t, task.Len(), "nothing to submit before the first rebuild")

	_, err := s.Rebuild()
	require.NoError(t, err)
	s.Transform = mgl32.Translate3D(1, 2, 3)
	s.Submit(&task)
	require.Equal(t, 1, task.Len())
	assert.Equal(t, s.Transform, task.Entries()[0].Transform)
}

func TestSceneApplyRemove(t *testing.T) {
	s := NewScene(world.NewFilledChunk(world.BlockDirt), &fakeStore{})
	sel := graphics.Selection{Voxel: [3]int{1, 3, 1}, Face: geometry.PositiveY}

	changed, err := s.Apply(sel, input.MouseLeft)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, s.Chunk.IsSolid(sel.Voxel))

	changed, err = s.Apply(sel, input.MouseLeft)
	require.NoError(t, err)
	assert.False(t, changed, "removing air does nothing")
}

func TestSceneApplyPlace(t *testing.T) {
	s := NewScene(world.NewFilledChunk(world.BlockAir), &fakeStore{})
	require.NoError(t, s.Chunk.Set([3]int{1, 1, 1}, world.BlockTypeStone))
	sel := graphics.Selection{Voxel: [3]int{1, 1, 1}, Face: geometry.NegativeZ}

	changed, err := s.Apply(sel, input.MouseRight)
	require.NoError(t, err)
	assert.True(t, changed)
	b, ok := s.Chunk.Sample([3]int{1, 1, 0})
	require.True(t, ok)
	assert.Equal(t, world.BlockTypeDirt, b.Type)

	changed, err = s.Apply(sel, input.MouseRight)
	require.NoError(t, err)
	assert.False(t, changed, "neighbor is already solid")

	changed, err = s.Apply(sel, input.MouseMiddle)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSceneApplyPlaceOutOfBounds(t *testing.T) {
	config.SetDebug(true)
	t.Cleanup(func() { config.SetDebug(false) })

	s := NewScene(world.NewFilledChunk(world.BlockDirt), &fakeStore{})
	sel := graphics.Selection{Voxel: [3]int{0, 0, 0}, Face: geometry.NegativeX}

	changed, err := s.Apply(sel, input.MouseRight)
	assert.False(t, changed)
	assert.True(t, errors.Is(err, world.ErrOutOfBounds))
}

func TestNewChunkFillModes(t *testing.T) {
	dirt := NewChunk(config.WorldSettings{Fill: config.FillDirt})
	assert.True(t, dirt.IsSolid([3]int{2, 2, 2}))

	a := NewChunk(config.WorldSettings{Seed: 7, Fill: config.FillRandom})
	b := NewChunk(config.WorldSettings{Seed: 7, Fill: config.FillRandom})
	assert.Equal(t, a.Vertices(), b.Vertices(), "same seed, same chunk")
}

func TestFPSLimiter(t *testing.T) {
	unlimited := NewFPSLimiter(0)
	start := time.Now()
	unlimited.Wait()
	assert.Less(t, time.Since(start), 5*time.Millisecond)

	limited := NewFPSLimiter(100)
	start = time.Now()
	limited.Wait()
	limited.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
