// Package viewer runs the interactive frame loop around a demo scene.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/config"
	"github.com/Faultbox/scenery/internal/demo"
	"github.com/Faultbox/scenery/internal/engine/camera"
	"github.com/Faultbox/scenery/internal/engine/debug"
	"github.com/Faultbox/scenery/internal/engine/glsink"
	"github.com/Faultbox/scenery/internal/engine/input"
	"github.com/Faultbox/scenery/internal/engine/window"
	"github.com/Faultbox/scenery/internal/inspect"
	"github.com/Faultbox/scenery/internal/logger"
	"github.com/Faultbox/scenery/pkg/render"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

const title = "sgview"

// clickSlop is how far the mouse may move, in pixels, between press and
// release for the release to count as a pick.
const clickSlop = 4

// Viewer is the interactive scene viewer.
type Viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	window   *window.Window
	renderer *glsink.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *demo.Scene
	driver   *sg.Driver
	controls *controls

	snap    *inspect.Snapshotter
	metrics *inspect.Metrics
	shots   *debug.Screenshots

	picked   *sg.Hit
	lastSnap time.Time
}

// New opens the window and GL context and prepares the scene for display.
// snap and metrics may be nil when the inspector is disabled.
func New(cfg *config.Config, scene *demo.Scene, snap *inspect.Snapshotter, metrics *inspect.Metrics) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		scene:    scene,
		driver:   sg.NewDriver(scene.Root),
		controls: newControls(scene, logger.Named("controls"), cfg.Scene.ShowBounds),
		snap:     snap,
		metrics:  metrics,
		shots:    debug.NewScreenshots(cfg.Graphics.ScreenshotDir, title),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer comes after the window: it needs the GL context.
	w, h := v.window.Size()
	v.renderer, err = glsink.New(glsink.Config{
		Width:  w,
		Height: h,
		Clear:  render.Color{R: 0.08, G: 0.09, B: 0.11, A: 1},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.camera.FitToBounds(sg.BoundingBox(scene.Root))

	v.log.Info("viewer initialized",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.String("scene", scene.Describe()),
	)
	return v, nil
}

// Run drives frames until the window closes, Escape is pressed or ctx is
// cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	var minFrame time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	v.log.Info("starting frame loop")
	v.capture()

	for {
		start := time.Now()
		dt := float32(start.Sub(lastTime).Seconds())
		lastTime = start

		if ctx.Err() != nil {
			break
		}

		// 1. Input
		if v.input.Update() {
			break
		}
		v.handleEvents()
		if v.controls.quit {
			break
		}
		if v.controls.fullscreen {
			v.controls.fullscreen = false
			if err := v.window.ToggleFullscreen(); err != nil {
				v.log.Warn("fullscreen toggle failed", zap.Error(err))
			}
		}
		v.handleMovement(dt)

		// 2. Update, then deliver signals raised this frame before it is
		// drawn. Delayed control signals keep counting down.
		scaled := dt * v.cfg.Scene.TimeScale
		v.scene.Step(scaled)
		v.driver.Step(scaled)
		v.driver.Deliver()

		// 3. Render
		stats := v.render()
		if v.controls.shot {
			v.controls.shot = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		if v.metrics != nil {
			v.metrics.ObserveFrame(inspect.FrameStats{
				Duration: time.Since(start),
				Batches:  stats.Batches,
				Vertices: stats.Vertices,
				States:   stats.States,
			})
		}
		if v.snap != nil && time.Since(v.lastSnap) >= v.cfg.Inspect.Refresh {
			v.capture()
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %d fps - %s", title, frameCount, v.scene.Describe()))
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("batches", stats.Batches),
				zap.Int("vertices", stats.Vertices),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spent := time.Since(start); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}

	v.log.Info("frame loop stopped", zap.Uint64("frames", v.driver.Frame()))
	return nil
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.renderer.Resize(e.Width, e.Height)
		case input.EventKeyDown:
			v.controls.key(e.Key, e.Shift)
		case input.EventMouseMove:
			if v.input.ButtonDown(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT && v.input.Travel() <= clickSlop {
				v.pick(e.MouseX, e.MouseY)
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(e.DeltaY))
		}
	}
}

func (v *Viewer) handleMovement(dt float32) {
	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward*dt, right*dt, up*dt)
	}
}

func (v *Viewer) pick(x, y int) {
	w, h := v.renderer.Size()
	hits := sg.Pick(v.scene.Root, v.camera.Ray(float32(x), float32(y), w, h))
	if len(hits) == 0 {
		v.picked = nil
		return
	}
	v.picked = &hits[0]
	v.log.Info("picked",
		zap.String("node", v.picked.Node.AsBase().ID()),
		zap.String("kind", v.picked.Node.Kind()),
		zap.Float32("distance", v.picked.Distance),
	)
}

func (v *Viewer) render() glsink.Stats {
	v.renderer.Begin(v.camera.ProjectionMatrix(v.renderer.Aspect()), v.camera.ViewMatrix())

	rc := sg.NewRenderContext(v.renderer.Sink())
	rc.Eye = v.camera.Position()
	v.driver.Render(rc)

	switch {
	case v.picked != nil:
		debug.DrawBox(v.renderer.Sink(), v.picked.Bounds, debug.Highlight, debug.DefaultBBoxPadding)
	case v.controls.bounds:
		debug.DrawBox(v.renderer.Sink(), sg.BoundingBox(v.scene.Root), debug.Highlight, debug.DefaultBBoxPadding)
	}

	return v.renderer.End()
}

func (v *Viewer) capture() {
	if v.snap == nil {
		return
	}
	v.lastSnap = time.Now()
	if err := v.snap.Capture(v.driver, v.camera.Position()); err != nil {
		v.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	if v.metrics != nil {
		if info, ok := v.snap.Info(); ok {
			v.metrics.ObserveSnapshot(info)
		}
	}
}

// screenshot saves the frame just rendered, before the swap.
func (v *Viewer) screenshot() {
	w, h := v.renderer.Size()
	name, err := v.shots.Save(v.renderer.ReadPixels(), w, h, v.driver.Frame())
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", name))
}
