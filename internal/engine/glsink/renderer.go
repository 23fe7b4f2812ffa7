package glsink

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/logger"
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Clear  render.Color
}

// Renderer owns the per-frame GL setup around a Sink.
type Renderer struct {
	config Config
	sink   Sink
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Named("gl").Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Frame defaults match render.DefaultState.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(true)
	gl.ShadeModel(gl.SMOOTH)
	gl.Enable(gl.NORMALIZE)
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)
	gl.ClearColor(cfg.Clear.R, cfg.Clear.G, cfg.Clear.B, cfg.Clear.A)
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Sink returns the sink scene traversals render into.
func (r *Renderer) Sink() *Sink { return &r.sink }

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) { return r.config.Width, r.config.Height }

// Aspect returns width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Named("gl").Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame and loads the camera matrices. Scene traversals
// multiply onto the loaded view matrix.
func (r *Renderer) Begin(proj, view math.Mat4) {
	r.sink.Reset()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&view[0])
}

// End finishes the current frame and returns its counters.
func (r *Renderer) End() Stats {
	gl.Flush()
	return r.sink.Stats()
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() []byte {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Named("gl").Info("closing renderer")
}
