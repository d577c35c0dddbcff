// Package game wires the camera, input, chunk and renderer into the
// per-frame loop.
package game

import (
	"errors"
	"log"
	"time"

	"mini-voxel/internal/assets"
	"mini-voxel/internal/camera"
	"mini-voxel/internal/config"
	"mini-voxel/internal/export"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/input"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	slowFrame = 16 * time.Millisecond
	// clicks buffered between two frames
	clickQueueSize = 16
)

type Game struct {
	window   *glfw.Window
	cfg      config.Settings
	input    *input.State
	camera   *camera.Camera
	renderer *graphics.Renderer
	scene    *Scene

	clicks  chan input.MouseButton
	atlas   <-chan assets.Result
	watcher *assets.Watcher

	captured     bool
	firstMouse   bool
	lastX, lastY float64

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

// New creates the renderer and scene for window. The window's context must
// be current on the calling thread.
func New(window *glfw.Window, cfg config.Settings) (g *Game, err error) {
	config.SetDebug(cfg.Debug)

	fbWidth, fbHeight := window.GetFramebufferSize()
	r, err := graphics.NewRenderer(graphics.Options{
		ShadersDir:    cfg.Assets.ShadersDir,
		Width:         fbWidth,
		Height:        fbHeight,
		PickHeight:    cfg.Picking.Height,
		ChunkSize:     world.ChunkSize,
		LightPosition: mgl32.Vec3{world.ChunkSize * 2, world.ChunkSize * 3, world.ChunkSize * 2},
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			r.Dispose()
		}
	}()

	if err := r.UploadAtlas(assets.ProceduralAtlas()); err != nil {
		return nil, err
	}

	c := cfg.Camera
	cam := camera.New(mgl32.Vec3(c.Position), c.Yaw, c.Pitch)
	cam.Speed, cam.Sensitivity = c.Speed, c.Sensitivity
	cam.FOV, cam.Near, cam.Far = c.FOV, c.Near, c.Far
	cam.SetViewport(fbWidth, fbHeight)

	scene := NewScene(NewChunk(cfg.World), r)
	if _, err := scene.Rebuild(); err != nil {
		return nil, err
	}

	g = &Game{
		window:     window,
		cfg:        cfg,
		input:      input.NewState(),
		camera:     cam,
		renderer:   r,
		scene:      scene,
		clicks:     make(chan input.MouseButton, clickQueueSize),
		captured:   true,
		firstMouse: true,
		fpsLimiter: NewFPSLimiter(cfg.Window.MaxFPS),
		lastTime:   time.Now(),
	}

	g.input.OnMouseMove(cam.PushLook)
	g.input.OnMouseButton(func(b input.MouseButton) {
		select {
		case g.clicks <- b:
		default:
		}
	})

	if cfg.Assets.Atlas != "" {
		g.atlas = assets.DecodeAsync(cfg.Assets.Atlas)
	}
	if cfg.Assets.WatchShaders {
		if g.watcher, err = assets.Watch(cfg.Assets.ShadersDir); err != nil {
			log.Printf("Shader hot reload disabled: %v", err)
			g.watcher, err = nil, nil
		}
	}

	setupInputHandlers(g)
	return g, nil
}

func (g *Game) Run() {
	for !g.window.ShouldClose() {
		g.tick()
	}
}

func (g *Game) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := float32(startTick.Sub(g.lastTime).Seconds())
	g.lastTime = startTick

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	g.pollAssets()
	g.handleInputActions()

	func() { defer profiling.Track("camera.Update")(); g.camera.Update(dt, g.input) }()

	task := g.buildTask()
	sel, picked := g.renderer.Pick(task, g.camera)

	if g.applyClicks(sel, picked) {
		task = g.buildTask()
		sel, picked = g.renderer.Pick(task, g.camera)
	}

	var highlight *graphics.Selection
	if picked {
		highlight = &sel
	}
	g.renderer.Render(task, g.camera, highlight)

	func() { defer profiling.Track("glfw.SwapBuffers")(); g.window.SwapBuffers() }()

	// Check if frame took too long (> 16ms)
	if d := time.Since(startTick); d > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	g.input.PostUpdate() // Clear "JustPressed" flags
	g.fpsLimiter.Wait()
}

func (g *Game) buildTask() *graphics.RenderTask {
	task := g.renderer.Task()
	g.scene.Submit(task)
	return task
}

// applyClicks drains queued clicks against sel; without a pick they are
// dropped. It reports whether the chunk mesh was replaced.
func (g *Game) applyClicks(sel graphics.Selection, picked bool) bool {
	changed := false
	for {
		select {
		case b := <-g.clicks:
			if !picked {
				continue
			}
			ok, err := g.scene.Apply(sel, b)
			if errors.Is(err, world.ErrOutOfBounds) {
				if config.GetDebug() {
					log.Printf("Ignored edit: %v", err)
				}
				continue
			}
			if err != nil {
				log.Printf("Edit failed: %v", err)
				continue
			}
			changed = changed || ok
		default:
			if !changed {
				return false
			}
			uploaded, err := g.scene.Rebuild()
			if err != nil {
				log.Printf("Rebuild failed: %v", err)
				return false
			}
			return uploaded
		}
	}
}

func (g *Game) handleInputActions() {
	if g.input.JustPressed(input.KeyRelease) {
		g.setCaptured(false)
	}

	if g.input.JustPressed(input.KeyExport) {
		path := g.cfg.Assets.ExportPath
		if err := export.SaveGLB(path, "chunk", g.scene.Vertices()); err != nil {
			log.Printf("Export failed: %v", err)
		} else {
			log.Printf("Exported chunk mesh to %s", path)
		}
	}
}

func (g *Game) pollAssets() {
	if g.atlas != nil {
		select {
		case res := <-g.atlas:
			g.atlas = nil
			if res.Err != nil {
				log.Printf("Atlas %s unavailable, keeping procedural atlas: %v", res.Path, res.Err)
				break
			}
			if err := g.renderer.UploadAtlas(assets.FitAtlas(res.Image)); err != nil {
				log.Printf("Atlas upload failed: %v", err)
			}
		default:
		}
	}

	if g.watcher != nil {
		if name, ok := g.watcher.Poll(); ok {
			if err := g.renderer.ReloadShaders(); err != nil {
				log.Printf("Shader reload after %s change failed: %v", name, err)
			} else {
				log.Printf("Shaders reloaded after %s changed", name)
			}
		}
	}
}

// Close releases the scene and every GPU object.
func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	g.scene.Release()
	g.renderer.Dispose()
}
