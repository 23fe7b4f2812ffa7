package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/demo"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

const (
	minSpeed = 0.125
	maxSpeed = 8
)

// controls maps key presses onto scene operations. It holds no GL state
// so the bindings can be exercised headless.
type controls struct {
	scene  *demo.Scene
	log    *zap.Logger
	paused bool
	speed  float32
	bounds bool
	shot   bool
	quit   bool

	fullscreen bool
}

func newControls(scene *demo.Scene, log *zap.Logger, showBounds bool) *controls {
	return &controls{scene: scene, log: log, speed: 1, bounds: showBounds}
}

// key applies the binding for scancode, if any. Shift reverses the
// direction of cycling keys. It reports whether the key was bound.
func (c *controls) key(code sdl.Scancode, shift bool) bool {
	root := c.scene.Root
	switch code {
	case sdl.SCANCODE_ESCAPE:
		c.quit = true
	case sdl.SCANCODE_SPACE:
		c.scene.DoorToggle.Control(true)
	case sdl.SCANCODE_TAB:
		if shift {
			c.scene.Variants.Prev()
		} else {
			c.scene.Variants.Next()
		}
	case sdl.SCANCODE_P:
		c.paused = !c.paused
		sg.PauseAll(root, c.paused)
		c.log.Info("animations paused", zap.Bool("paused", c.paused))
	case sdl.SCANCODE_R:
		sg.RestartAll(root, 0)
		c.log.Info("animations restarted")
	case sdl.SCANCODE_F:
		sg.FinishAll(root)
	case sdl.SCANCODE_V:
		sg.ReverseAll(root)
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		c.setSpeed(c.speed * 2)
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		c.setSpeed(c.speed / 2)
	case sdl.SCANCODE_B:
		c.bounds = !c.bounds
	case sdl.SCANCODE_F11:
		c.fullscreen = true
	case sdl.SCANCODE_F12:
		c.shot = true
	default:
		return false
	}
	return true
}

func (c *controls) setSpeed(f float32) {
	if f < minSpeed {
		f = minSpeed
	}
	if f > maxSpeed {
		f = maxSpeed
	}
	if f == c.speed {
		return
	}
	c.speed = f
	sg.SpeedupAll(c.scene.Root, f)
	c.log.Info("animation speed", zap.Float32("factor", f))
}
