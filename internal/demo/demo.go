// Package demo builds the scene shown by sgview. It exercises every node
// family: shared leaves under transforms and state, selection, animation,
// transitions, control wiring, a lazily built floor and a physics body.
package demo

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/logger"
	"github.com/Faultbox/scenery/pkg/geom"
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/physics"
	"github.com/Faultbox/scenery/pkg/render"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

// Options tunes the demo scene.
type Options struct {
	// Grid is the number of shared cube instances per side.
	Grid int
	// Optimize runs the optimizer over the finished scene.
	Optimize bool
}

// Scene is the demo graph plus handles to the nodes the viewer drives.
type Scene struct {
	Root *sg.Group

	Spinner    *sg.Animation
	Bouncer    *sg.Animation
	Door       *sg.Transition
	DoorToggle *sg.Control
	Variants   *sg.Switcher
	Detail     *sg.LOD
	Floor      *sg.OptimizingSubgraph
	Drift      *physics.Kinematic

	Stats sg.Stats
}

const driftBound = 3

// doorDelay is how long, in seconds, the door waits before reacting to a
// toggle.
const doorDelay = 0.25

var palette = []render.Color{
	{R: 0.9, G: 0.3, B: 0.3, A: 1},
	{R: 0.3, G: 0.8, B: 0.4, A: 1},
	{R: 0.3, G: 0.5, B: 0.9, A: 1},
	{R: 0.9, G: 0.8, B: 0.3, A: 1},
}

// Build assembles the demo scene.
func Build(opt Options) *Scene {
	s := &Scene{Root: sg.NewGroup("scene")}
	cube := sg.NewManagedLeaf("cube", geom.Cube(0.8))
	quad := sg.NewManagedLeaf("quad", geom.Quad())

	lit := sg.Attach(s.Root, sg.NewLighting(true))
	sun := sg.Attach(lit, sg.NewLight(0, render.Light{
		Position: [4]float32{0.4, 1, 0.6, 0},
		Ambient:  render.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		Diffuse:  render.White,
	}))
	colored := sg.Attach(sun, sg.NewColoring(true))

	s.buildGrid(colored, cube, opt.Grid)

	// Spinner: a cube rotating forever above the grid.
	lift := sg.Attach(colored, sg.NewTranslation(math.Vec3{Y: 2}))
	s.Spinner = sg.Attach(lift, sg.NewAnimation("spinner", sg.Motion{
		Axis:  math.Vec3{Y: 1},
		Angle: 1,
	}, 0.8))
	s.Spinner.Add(cube)

	// Bouncer: slides along X and stops at either end, signalling the
	// relay that restarts it the other way.
	s.Bouncer = sg.Attach(colored, sg.NewAnimation("bouncer", sg.Motion{
		Translate: math.Vec3{X: 4},
	}, 0.5))
	s.Bouncer.SetLimit(0.5, true, true)
	sg.Attach(s.Bouncer, sg.NewTranslation(math.Vec3{Y: 3.5})).Add(quad)

	relay := sg.Attach(s.Root, sg.NewControl("bounce-relay", 0))
	relay.Listen(s.Bouncer)
	relay.SetControlMode(sg.ModeOn)
	sg.Attach(relay, sg.NewAction("reverse", sg.ActReverse, 0)).Add(s.Bouncer)
	sg.Attach(relay, sg.NewAction("resume", sg.ActResume, 0)).Add(s.Bouncer)

	// Door: a quad that swings open when toggled.
	hinge := sg.Attach(colored, sg.NewTranslation(math.Vec3{X: -3, Y: 1}))
	s.Door = sg.Attach(hinge, sg.NewTransition("door", 0.75, sg.IdentityPose(), sg.Pose{
		Translate: math.Vec3{Z: 0.5},
		Rotate:    math.QuatFromAxisAngle(math.Vec3{Y: 1}, math32.Pi/2),
		Scale:     math.Vec3{X: 1, Y: 1, Z: 1},
	}))
	sg.Attach(s.Door, sg.NewColor(palette[3])).Add(quad)

	s.DoorToggle = sg.Attach(s.Root, sg.NewControl("door-toggle", doorDelay))
	s.DoorToggle.SetControlMode(sg.ModeInvert)
	s.DoorToggle.Add(s.Door)

	// Variants: one of three shapes at a time.
	spot := sg.Attach(colored, sg.NewTranslation(math.Vec3{X: 3, Y: 1}))
	s.Variants = sg.Attach(spot, sg.NewSwitcher("variants"))
	s.Variants.Add(cube)
	sg.Attach(s.Variants, sg.NewScaling(math.Vec3{X: 1.5, Y: 1.5, Z: 1.5})).Add(quad)
	sg.Attach(s.Variants, sg.NewLineWidth(3)).Add(sg.NewManagedLeaf("", geom.Segment(
		math.Vec3{Y: -0.5}, math.Vec3{Y: 0.5})))

	// Detail: full cube near the eye, a quad further out, nothing beyond.
	far := sg.Attach(colored, sg.NewTranslation(math.Vec3{Z: -4, Y: 1}))
	s.Detail = sg.Attach(far, sg.NewLOD("detail", 10, 25))
	s.Detail.Add(cube)
	s.Detail.Add(quad)

	// Drift: a body moved by the physics step, not by the graph.
	s.Drift = physics.NewKinematic(1, math.Vec3{Y: 0.5, Z: 3})
	s.Drift.SetVelocity(math.Vec3{X: 1})
	sg.Attach(colored, sg.NewManagedBodyTransform("drift", s.Drift)).Add(cube)

	s.Floor = sg.Attach(s.Root, sg.NewOptimizingSubgraph("floor", floor))

	if opt.Optimize {
		s.Stats = sg.OptimizeAll(s.Root)
	}
	logger.Named("demo").Info("scene built",
		zap.Int("grid", opt.Grid),
		zap.Bool("optimized", opt.Optimize),
		zap.Int("rewrites", s.Stats.Total()),
		zap.Int("nodes", sg.CountAllOnce(s.Root)),
	)
	return s
}

// buildGrid places grid×grid instances of the shared cube, each under its
// own translation and color.
func (s *Scene) buildGrid(parent sg.Node, cube *sg.Leaf, grid int) {
	if grid <= 0 {
		return
	}
	group := sg.Attach(parent, sg.NewGroup("grid"))
	off := float32(grid-1) / 2
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			at := math.Vec3{X: (float32(i) - off) * 1.5, Z: (float32(j) - off) * 1.5}
			move := sg.Attach(group, sg.NewTranslation(at))
			sg.Attach(move, sg.NewColor(palette[(i+j)%len(palette)])).Add(cube)
		}
	}
}

// floor builds a line grid from unmanaged segment leaves for the
// optimizing subgraph to merge.
func floor() sg.Node {
	root := sg.NewGroup("")
	lines := sg.Attach(root, sg.NewLighting(false))
	tint := sg.Attach(lines, sg.NewColor(render.Color{R: 0.5, G: 0.5, B: 0.55, A: 1}))
	const half, step = 6, 1
	for x := -half; x <= half; x += step {
		tint.Add(sg.NewManagedLeaf("", geom.Segment(
			math.Vec3{X: float32(x), Z: -half}, math.Vec3{X: float32(x), Z: half})))
	}
	for z := -half; z <= half; z += step {
		tint.Add(sg.NewManagedLeaf("", geom.Segment(
			math.Vec3{X: -half, Z: float32(z)}, math.Vec3{X: half, Z: float32(z)})))
	}
	return root
}

// Step advances the physics body, keeping it within the drift bounds.
func (s *Scene) Step(dt float32) {
	s.Drift.Step(dt)
	p := s.Drift.Transform().Translation()
	v := s.Drift.Velocity()
	if (p.X > driftBound && v.X > 0) || (p.X < -driftBound && v.X < 0) {
		s.Drift.SetVelocity(math.Vec3{X: -v.X})
	}
}

// Describe returns a one-line summary for the window title.
func (s *Scene) Describe() string {
	return fmt.Sprintf("%d nodes, %d paths, %d primitives",
		sg.CountAllOnce(s.Root), sg.CountAll(s.Root), sg.CountPrimitives(s.Root))
}
