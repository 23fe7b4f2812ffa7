package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/render"
)

// Driver runs the per-frame protocol on one root node.
type Driver struct {
	Root Node

	frame uint64
	time  float64
}

// NewDriver creates a driver for root.
func NewDriver(root Node) *Driver {
	return &Driver{Root: root}
}

// Frame returns the number of completed update steps.
func (d *Driver) Frame() uint64 { return d.frame }

// Time returns the accumulated frame time in seconds.
func (d *Driver) Time() float64 { return d.time }

// Step advances the graph by dt seconds. A zero step settles the graph
// instead of advancing it.
func (d *Driver) Step(dt float32) {
	if d.Root == nil {
		return
	}
	PreUpdate(d.Root)
	if dt == 0 {
		Settle(d.Root)
		return
	}
	Update(d.Root, dt)
	d.frame++
	d.time += float64(dt)
}

// Settle flushes pending signals without advancing time.
func (d *Driver) Settle() {
	if d.Root != nil {
		Settle(d.Root)
	}
}

// Deliver passes armed signals to their listeners without flushing delayed
// ones. Frame loops call it after every step.
func (d *Driver) Deliver() {
	if d.Root != nil {
		Deliver(d.Root)
	}
}

// Render runs pre-render, render and post-render into sink.
func (d *Driver) Render(rc *RenderContext) {
	if d.Root == nil {
		return
	}
	PreRender(d.Root)
	Render(d.Root, rc)
	PostRender(d.Root)
}

// RenderTo renders one frame into sink from the default state.
func (d *Driver) RenderTo(sink render.Sink) *RenderContext {
	rc := NewRenderContext(sink)
	d.Render(rc)
	return rc
}
