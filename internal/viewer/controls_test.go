package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/demo"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

func newTestControls() *controls {
	return newControls(demo.Build(demo.Options{Grid: 1}), zap.NewNop(), false)
}

func TestKeyTogglesDoor(t *testing.T) {
	c := newTestControls()
	d := sg.NewDriver(c.scene.Root)

	require.True(t, c.key(sdl.SCANCODE_SPACE, false))
	d.Settle()
	for i := 0; i < 60; i++ {
		d.Step(0.05)
	}
	assert.InDelta(t, 1, c.scene.Door.Weight(), 1e-4)
}

func TestKeyCyclesVariants(t *testing.T) {
	c := newTestControls()
	before := c.scene.Variants.Active()
	c.key(sdl.SCANCODE_TAB, false)
	assert.NotEqual(t, before, c.scene.Variants.Active())
}

func TestKeyPausesAnimations(t *testing.T) {
	c := newTestControls()
	c.key(sdl.SCANCODE_P, false)
	assert.True(t, c.paused)
	assert.True(t, c.scene.Spinner.Paused())

	c.key(sdl.SCANCODE_P, false)
	assert.False(t, c.scene.Spinner.Paused())
}

func TestKeySpeedClamps(t *testing.T) {
	c := newTestControls()
	for i := 0; i < 10; i++ {
		c.key(sdl.SCANCODE_EQUALS, false)
	}
	assert.Equal(t, float32(maxSpeed), c.speed)
	assert.Equal(t, float32(maxSpeed), c.scene.Spinner.Speed())

	for i := 0; i < 10; i++ {
		c.key(sdl.SCANCODE_MINUS, false)
	}
	assert.Equal(t, float32(minSpeed), c.speed)
	assert.Equal(t, float32(minSpeed), c.scene.Bouncer.Speed())
}

func TestKeyQuitAndBounds(t *testing.T) {
	c := newTestControls()
	c.key(sdl.SCANCODE_B, false)
	assert.True(t, c.bounds)
	assert.False(t, c.quit)
	c.key(sdl.SCANCODE_ESCAPE, false)
	assert.True(t, c.quit)
}

func TestUnboundKey(t *testing.T) {
	c := newTestControls()
	assert.False(t, c.key(sdl.SCANCODE_Z, false))
}

func TestKeyRequestsScreenshot(t *testing.T) {
	c := newTestControls()
	require.True(t, c.key(sdl.SCANCODE_F12, false))
	assert.True(t, c.shot)
	require.True(t, c.key(sdl.SCANCODE_F11, false))
	assert.True(t, c.fullscreen)
}

func TestShiftTabCyclesBack(t *testing.T) {
	c := newTestControls()
	c.key(sdl.SCANCODE_TAB, true)
	assert.Equal(t, 2, c.scene.Variants.Active())
	c.key(sdl.SCANCODE_TAB, false)
	assert.Equal(t, 0, c.scene.Variants.Active())
}
