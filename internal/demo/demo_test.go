package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

func run(s *Scene, d *sg.Driver, seconds, dt float32) {
	for t := float32(0); t < seconds; t += dt {
		s.Step(dt)
		d.Step(dt)
		d.Deliver()
	}
}

func TestBuildStructure(t *testing.T) {
	s := Build(Options{Grid: 3})
	require.NotNil(t, s.Root)

	assert.False(t, sg.CheckStructure(s.Root), "render structure must be acyclic")
	assert.False(t, sg.CheckForCycles(s.Root))
	assert.NotNil(t, sg.Find(s.Root, "grid"))
	assert.Same(t, s.Door, sg.Find(s.Root, "door"))
	assert.Equal(t, 0, s.Variants.Active())

	sg.PreRender(s.Root)
	assert.True(t, s.Floor.Built())
	assert.NoError(t, s.Floor.Err())
	assert.True(t, sg.BoundingBox(s.Root).Valid())
	assert.NotEmpty(t, s.Describe())
}

func TestNoGrid(t *testing.T) {
	s := Build(Options{})
	assert.Nil(t, sg.Find(s.Root, "grid"))
}

func TestBouncerTurnsAround(t *testing.T) {
	s := Build(Options{Grid: 1})
	d := sg.NewDriver(s.Root)

	run(s, d, 1.5, 0.1)
	assert.False(t, s.Bouncer.Paused())
	assert.Less(t, s.Bouncer.Velocity(), float32(0))
	assert.Less(t, s.Bouncer.Phase(), float32(0.5))

	run(s, d, 2.5, 0.1)
	assert.Greater(t, s.Bouncer.Velocity(), float32(0), "turned around at the negative bound too")
}

func TestDoorToggle(t *testing.T) {
	s := Build(Options{Grid: 1})
	d := sg.NewDriver(s.Root)

	s.DoorToggle.Control(true)
	run(s, d, doorDelay/2, 0.05)
	assert.True(t, s.DoorToggle.Pending(), "door waits out its delay")
	assert.Equal(t, float32(0), s.Door.Weight())

	run(s, d, 1.5, 0.05)
	assert.False(t, s.DoorToggle.Pending())
	assert.Equal(t, float32(1), s.Door.Weight())

	s.DoorToggle.Control(true)
	run(s, d, 1.5, 0.05)
	assert.Equal(t, float32(0), s.Door.Weight())
}

func TestDriftStaysBounded(t *testing.T) {
	s := Build(Options{Grid: 1})
	for i := 0; i < 400; i++ {
		s.Step(0.05)
		x := s.Drift.Transform().Translation().X
		require.LessOrEqual(t, x, float32(driftBound+0.1))
		require.GreaterOrEqual(t, x, float32(-driftBound-0.1))
	}
}

func TestOptimizedMatchesPlain(t *testing.T) {
	plain := Build(Options{Grid: 3})
	opt := Build(Options{Grid: 3, Optimize: true})
	sg.PreRender(plain.Root)
	sg.PreRender(opt.Root)

	assert.Positive(t, opt.Stats.Total())
	assert.Equal(t, sg.CountVertices(plain.Root), sg.CountVertices(opt.Root))
	assert.Equal(t, sg.CountPrimitives(plain.Root), sg.CountPrimitives(opt.Root))
	bp, bo := sg.BoundingBox(plain.Root), sg.BoundingBox(opt.Root)
	assert.True(t, bp.Min.ApproxEqual(bo.Min, 1e-4), "min %v vs %v", bp.Min, bo.Min)
	assert.True(t, bp.Max.ApproxEqual(bo.Max, 1e-4), "max %v vs %v", bp.Max, bo.Max)
	assert.False(t, sg.CheckStructure(opt.Root))
}
