package graphics

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"mini-voxel/internal/camera"
	"mini-voxel/internal/geometry"
	"mini-voxel/internal/picking"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Shader file names under Options.ShadersDir
const (
	MainVertShader    = "main.vert"
	MainFragShader    = "main.frag"
	PickingVertShader = "picking.vert"
	PickingFragShader = "picking.frag"
)

const (
	// highlight ring edge length and bar thickness, in voxels
	highlightScale = 1.0
	highlightWidth = 0.05
)

var (
	clearColor     = mgl32.Vec4{0.53, 0.81, 0.92, 1.0}
	highlightColor = mgl32.Vec3{0.05, 0.05, 0.05}
)

// Options configures a Renderer.
type Options struct {
	ShadersDir string
	// Window framebuffer size in pixels
	Width, Height int
	// Picking target height; its width follows the window aspect
	PickHeight int
	// Edge length of the chunk grid the picking shader encodes
	ChunkSize int
	// World-space light position for the main pass
	LightPosition mgl32.Vec3
}

// Selection is the voxel face under the crosshair. Voxel, Face and Hit are
// in the local space of the picked task entry; Model maps them to world.
type Selection struct {
	Voxel [3]int
	Face  geometry.Face
	Hit   mgl32.Vec3
	Entry int
	Model mgl32.Mat4
}

// Neighbor returns the cell adjacent to the selected face.
func (s Selection) Neighbor() [3]int {
	off := s.Face.NeighborOffset()
	return [3]int{s.Voxel[0] + off[0], s.Voxel[1] + off[1], s.Voxel[2] + off[2]}
}

// Renderer owns the GPU programs, the picking framebuffer and the atlas,
// and runs the pick and draw passes. All methods must be called on the
// thread that owns the GL context.
type Renderer struct {
	opts Options

	mainShader    *Shader
	pickingShader *Shader
	target        *pickingTarget

	atlas     uint32
	highlight *Mesh

	width, height int32

	// meshes created through CreateMesh and not yet destroyed
	live map[uuid.UUID]*Mesh

	task RenderTask
}

// NewRenderer initializes GL state and creates every long-lived GPU object.
// Any failure releases what was already created.
func NewRenderer(opts Options) (r *Renderer, err error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}

	r = &Renderer{
		opts:   opts,
		width:  int32(opts.Width),
		height: int32(opts.Height),
		live:   make(map[uuid.UUID]*Mesh),
	}
	defer func() {
		if err != nil {
			r.Dispose()
			r = nil
		}
	}()

	gl.Enable(gl.DEPTH_TEST)
	// Enable back-face culling (geometry emits CCW front faces)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	if r.mainShader, r.pickingShader, err = loadPrograms(opts.ShadersDir); err != nil {
		return nil, err
	}

	pw, ph := r.pickingSize()
	if r.target, err = newPickingTarget(pw, ph); err != nil {
		return nil, err
	}

	if r.highlight, err = newMesh(geometry.SelectionRing(highlightScale, highlightWidth)); err != nil {
		return nil, fmt.Errorf("highlight mesh: %w", err)
	}

	log.Printf("Renderer ready: window %dx%d, picking target %dx%d", r.width, r.height, pw, ph)
	return r, nil
}

func loadPrograms(dir string) (shading, pick *Shader, err error) {
	shading, err = NewShader(filepath.Join(dir, MainVertShader), filepath.Join(dir, MainFragShader))
	if err != nil {
		return nil, nil, fmt.Errorf("main program: %w", err)
	}
	pick, err = NewShader(filepath.Join(dir, PickingVertShader), filepath.Join(dir, PickingFragShader))
	if err != nil {
		shading.Delete()
		return nil, nil, fmt.Errorf("picking program: %w", err)
	}
	return shading, pick, nil
}

// pickingSize keeps the configured picking height and matches the window
// aspect, so the target's center is the screen's center.
func (r *Renderer) pickingSize() (int32, int32) {
	h := int32(r.opts.PickHeight)
	if h <= 0 {
		h = r.height
	}
	w := h
	if r.height > 0 {
		w = int32(float32(h)*float32(r.width)/float32(r.height) + 0.5)
	}
	return max(w, 1), max(h, 1)
}

// CreateMesh uploads vertices into a new Mesh owned by the caller, who must
// release it with DestroyMesh.
func (r *Renderer) CreateMesh(vertices []geometry.Vertex) (*Mesh, error) {
	m, err := newMesh(vertices)
	if err != nil {
		return nil, err
	}
	r.live[m.ID] = m
	return m, nil
}

// DestroyMesh releases the mesh's GPU handles.
func (r *Renderer) DestroyMesh(m *Mesh) {
	if m == nil {
		return
	}
	delete(r.live, m.ID)
	m.release()
}

// LiveMeshes returns how many meshes are created and not destroyed.
func (r *Renderer) LiveMeshes() int {
	return len(r.live)
}

// Task returns the renderer's task, emptied for a new frame.
func (r *Renderer) Task() *RenderTask {
	r.task.entries = r.task.entries[:0]
	return &r.task
}

// UploadAtlas replaces the atlas texture.
func (r *Renderer) UploadAtlas(img image.Image) error {
	tex, err := UploadTexture(img)
	if err != nil {
		return fmt.Errorf("atlas: %w", err)
	}
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
	}
	r.atlas = tex
	b := img.Bounds()
	log.Printf("Atlas uploaded: %dx%d", b.Dx(), b.Dy())
	return nil
}

// SetViewport follows a window framebuffer resize. The picking target is
// reallocated so that its center stays the screen center.
func (r *Renderer) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = int32(width), int32(height)
	pw, ph := r.pickingSize()
	if err := r.target.resize(pw, ph); err != nil {
		return fmt.Errorf("resize picking target to %dx%d: %w", pw, ph, err)
	}
	return nil
}

// ReloadShaders recompiles both programs from disk. On failure the current
// programs stay in use.
func (r *Renderer) ReloadShaders() error {
	shading, pick, err := loadPrograms(r.opts.ShadersDir)
	if err != nil {
		return err
	}
	r.mainShader.Delete()
	r.pickingShader.Delete()
	r.mainShader, r.pickingShader = shading, pick
	return nil
}

// Pick renders task into the picking target and resolves the voxel face
// under the screen center. ok is false when nothing is there.
func (r *Renderer) Pick(task *RenderTask, cam *camera.Camera) (sel Selection, ok bool) {
	defer profiling.Track("graphics.Pick")()

	// a failed resize leaves no target to read from
	if r.target == nil || r.target.fbo == 0 {
		return Selection{}, false
	}
	r.target.bind()
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.pickingShader.Use()
	r.pickingShader.SetMat4("viewProj", cam.Matrix())
	r.pickingShader.SetFloat("gridMax", float32(max(r.opts.ChunkSize-1, 1)))

	entries := task.Entries()
	for i, e := range entries {
		alpha, encodable := picking.EncodeEntry(i)
		if !encodable {
			break
		}
		r.pickingShader.SetMat4("model", e.Transform)
		r.pickingShader.SetFloat("entry", float32(alpha)/255)
		e.Mesh.draw()
	}
	gl.BindVertexArray(0)

	px := r.target.readCenter()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	voxel, entry, hit := px.Decode(r.opts.ChunkSize)
	if !hit || entry >= len(entries) {
		return Selection{}, false
	}

	model := entries[entry].Transform
	ray := picking.Ray{Origin: cam.Position, Direction: cam.Direction}.Transform(model.Inv())
	face, point, found := picking.ResolveFace(ray, voxel)
	if !found {
		return Selection{}, false
	}
	return Selection{Voxel: voxel, Face: face, Hit: point, Entry: entry, Model: model}, true
}

// Render draws task to the window, plus the highlight ring on sel if set.
func (r *Renderer) Render(task *RenderTask, cam *camera.Camera, sel *Selection) {
	defer profiling.Track("graphics.Render")()

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.width, r.height)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	s := r.mainShader
	s.Use()
	s.SetMat4("viewProj", cam.Matrix())
	s.SetVec3("lightPos", r.opts.LightPosition)
	s.SetVec3("viewPos", cam.Position)
	s.SetInt("atlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	s.SetBool("useTexture", r.atlas != 0)

	for _, e := range task.Entries() {
		s.SetMat4("model", e.Transform)
		e.Mesh.draw()
	}

	if sel != nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		s.SetBool("useTexture", false)
		s.SetVec3("color", highlightColor)
		s.SetMat4("model", sel.Model.Mul4(picking.HighlightTransform(sel.Voxel, sel.Face)))
		r.highlight.draw()
	}

	gl.BindVertexArray(0)
}

// Dispose releases every GPU object the renderer owns and reports meshes
// the caller never destroyed.
func (r *Renderer) Dispose() {
	for id, m := range r.live {
		log.Printf("Mesh %s leaked (%d vertices), releasing", id, m.vertexCount)
		m.release()
		delete(r.live, id)
	}
	if r.highlight != nil {
		r.highlight.release()
		r.highlight = nil
	}
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	if r.target != nil {
		r.target.release()
		r.target = nil
	}
	if r.mainShader != nil {
		r.mainShader.Delete()
	}
	if r.pickingShader != nil {
		r.pickingShader.Delete()
	}
}
