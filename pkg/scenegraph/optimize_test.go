package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenery/pkg/geom"
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

func richScene() *Group {
	root := NewGroup("root")

	tr := Attach(root, NewTranslation(math.Vec3{X: 1}))
	col := Attach(tr, NewColor(render.RGB(1, 0, 0)))
	col.Add(NewLeaf("", geom.Quad()))
	col.Add(quadLeaf(""))

	sc := Attach(root, NewScaling(math.Vec3{X: 2, Y: 2, Z: 2}))
	lit := Attach(sc, NewLighting(true))
	lit.Add(NewManagedLeaf("", geom.Cube(1)))

	shared := quadLeaf("")
	Attach(root, NewGroup("")).Add(shared)
	Attach(root, NewRotation(math.Vec3{Y: 1}, 0.5)).Add(shared)

	sw := Attach(root, NewSwitcher("sw"))
	sw.Add(quadLeaf(""))
	sw.Add(NewColor(render.RGB(0, 1, 0)))
	sw.Child(1).AsBase().Add(quadLeaf(""))

	root.Add(NewManagedLeaf("named", geom.Cube(2)))
	root.Add(quadLeaf(""))
	root.Add(quadLeaf(""))
	return root
}

func TestOptimizeIsIdempotent(t *testing.T) {
	root := richScene()
	before := VertexDump(root)

	first := OptimizeAll(root)
	assert.Positive(t, first.Total())
	once := record(root)

	second := OptimizeAll(root)
	assert.Zero(t, second.Total())
	assert.Equal(t, once, record(root))
	assert.False(t, CheckForCycles(root))

	after := VertexDump(root)
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, before[i].ApproxEqual(after[i], 1e-5), "vertex %d: %v != %v", i, before[i], after[i])
	}
}

// vertexColors replays cmds and returns the current color at every vertex,
// honoring attribute push and pop.
func vertexColors(cmds []render.Command) []render.Color {
	cur := render.White
	var stack []render.Color
	var out []render.Color
	for _, c := range cmds {
		switch c.Op {
		case render.OpColor:
			cur = render.Color{R: c.Args[0], G: c.Args[1], B: c.Args[2], A: c.Args[3]}
		case render.OpPushAttrib:
			stack = append(stack, cur)
		case render.OpPopAttrib:
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case render.OpVertex:
			out = append(out, cur)
		}
	}
	return out
}

func TestOptimizeKeepsVertexColors(t *testing.T) {
	tests := []struct {
		name  string
		build func() Node
	}{
		{"folded color before plain sibling", func() Node {
			root := NewGroup("root")
			Attach(root, NewColor(render.RGB(1, 0, 0))).Add(quadLeaf(""))
			root.Add(quadLeaf(""))
			return root
		}},
		{"plain sibling before folded color", func() Node {
			root := NewGroup("root")
			root.Add(quadLeaf(""))
			Attach(root, NewColor(render.RGB(0, 1, 0))).Add(quadLeaf(""))
			root.Add(quadLeaf(""))
			return root
		}},
		{"nested colors", func() Node {
			root := NewGroup("root")
			outer := Attach(root, NewColor(render.RGB(0, 0, 1)))
			Attach(outer, NewColor(render.RGB(1, 1, 0))).Add(quadLeaf(""))
			outer.Add(quadLeaf(""))
			root.Add(quadLeaf(""))
			return root
		}},
		{"rich scene", func() Node { return richScene() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.build()
			before := vertexColors(record(root))
			OptimizeAll(root)
			assert.Equal(t, before, vertexColors(record(root)))
		})
	}
}

func TestOptimizeKeepsRefcounts(t *testing.T) {
	root := richScene()
	OptimizeAll(root)
	counts := edgeCounts(root)
	walkAll(root, func(n Node) bool {
		assert.Equal(t, counts[n], n.AsBase().Refs(), "%s", n.Kind())
		return true
	})
}

func TestOptimizeFoldsColorAndTransform(t *testing.T) {
	root := NewGroup("root")
	tr := Attach(root, NewTranslation(math.Vec3{Y: 1}))
	col := Attach(tr, NewColor(render.RGB(0, 0, 1)))
	col.Add(quadLeaf(""))

	OptimizeAll(root)
	require.Equal(t, 1, root.NumChildren())
	leaf, ok := root.Child(0).(*Leaf)
	require.True(t, ok, "got %s", root.Child(0).Kind())
	assert.True(t, tr.Freed())
	assert.True(t, col.Freed())

	cmds := record(root)
	assert.Len(t, filter(cmds, render.OpColor), 7)
	assert.Empty(t, filter(cmds, render.OpPushMatrix))
	assert.Empty(t, filter(cmds, render.OpPushAttrib))
	assert.InDelta(t, 1, BoundingBox(leaf).Center().Y, 1e-6)
}

func TestOptimizeSwapsStateOutward(t *testing.T) {
	root := NewGroup("root")
	mt := Attach(root, NewMatrixTransform(math.Translate(math.Vec3{X: 1})))
	tex := Attach(mt, NewTexturing(true))
	inner := Attach(tex, NewGroup("keep"))
	inner.Add(quadLeaf(""))

	OptimizeAll(root)
	require.Equal(t, 1, root.NumChildren())
	assert.Equal(t, tex, root.Child(0))
	assert.Equal(t, mt, tex.Child(0))
	assert.Equal(t, inner, mt.Child(0))
}

func TestOptimizeDoesNotSwapLights(t *testing.T) {
	root := NewGroup("root")
	mt := Attach(root, NewMatrixTransform(math.Translate(math.Vec3{X: 1})))
	light := Attach(mt, NewLight(0, render.Light{Position: [4]float32{0, 0, 1, 1}}))
	light.Add(NewGroup("keep"))

	OptimizeAll(root)
	assert.Equal(t, mt, root.Child(0))
	assert.Equal(t, light, mt.Child(0))
}

func TestOptimizeLeavesSharedNodesAlone(t *testing.T) {
	root, leaf := sharedScene()
	verts := leaf.Geometry().Vertices()

	OptimizeAll(root)
	assert.False(t, leaf.Freed())
	assert.Equal(t, 2, leaf.Refs())
	assert.Equal(t, verts, leaf.Geometry().Vertices(), "shared geometry is never baked")
	assert.Equal(t, 5, CountAll(root))
}

func TestOptimizeKeepsNamedNodes(t *testing.T) {
	root := NewGroup("root")
	tr := Attach(root, NewTranslation(math.Vec3{X: 1}))
	tr.Name = "mover"
	tr.Add(quadLeaf(""))

	OptimizeAll(root)
	assert.Equal(t, tr, root.Child(0))
	assert.Equal(t, tr, Find(root, "mover"))
}

func TestOptimizeNeverReordersSelection(t *testing.T) {
	sw := NewSwitcher("sw")
	first := Attach(sw, quadLeaf(""))
	col := Attach(sw, NewColor(render.White))
	col.Add(quadLeaf(""))
	col.Add(quadLeaf(""))
	last := Attach(sw, quadLeaf(""))
	sw.Select(2)

	OptimizeAll(sw)
	require.Equal(t, 3, sw.NumChildren())
	assert.Equal(t, first, sw.Child(0))
	assert.Equal(t, col, sw.Child(1))
	assert.Equal(t, last, sw.Child(2))
}

func TestOptimizeMergesRuns(t *testing.T) {
	root := NewGroup("root")
	root.Add(quadLeaf(""))
	root.Add(quadLeaf(""))
	root.Add(NewDepthTest(false))
	root.Add(NewManagedLeaf("", geom.New(render.TriangleStrip).Add(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1})))
	root.Add(NewManagedLeaf("", geom.New(render.TriangleStrip).Add(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1})))

	st := OptimizeAll(root)
	assert.Equal(t, 2, st.Merged)
	require.Equal(t, 3, root.NumChildren())

	tris := root.Child(0).(*Container)
	assert.Len(t, tris.Geometries(), 1)
	assert.Equal(t, 12, tris.Geometries()[0].VertexCount())

	strips := root.Child(2).(*Container)
	assert.Len(t, strips.Geometries(), 2, "strips cannot be concatenated")
	assert.Equal(t, 6, CountPrimitives(root))
}

func TestOptimizeSingleStep(t *testing.T) {
	root := NewGroup("root")
	root.Add(NewTranslation(math.Vec3{X: 1}))
	assert.True(t, Optimize(root))
	assert.Equal(t, "matrix", root.Child(0).Kind())
	assert.False(t, Optimize(root))
}
