package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenery/pkg/geom"
	"github.com/Faultbox/scenery/pkg/math"
)

func sharedScene() (root *Group, leaf *Leaf) {
	root = NewGroup("root")
	leaf = quadLeaf("leaf")
	Attach(root, NewGroup("b")).Add(leaf)
	Attach(root, NewTranslation(math.Vec3{X: 2})).Add(leaf)
	return root, leaf
}

func TestCountsOnSharedLeaf(t *testing.T) {
	root, leaf := sharedScene()
	require.Equal(t, 2, leaf.Geometry().PrimitiveCount())

	assert.Equal(t, 4, CountAllOnce(root))
	assert.Equal(t, 5, CountAll(root))
	assert.Equal(t, 4, CountPrimitives(root))
	assert.Equal(t, 12, CountVertices(root))
}

func TestCountsHonorFollowGate(t *testing.T) {
	sw := NewSwitcher("sw")
	sw.Add(quadLeaf(""))
	sw.Add(NewManagedLeaf("", geom.Cube(1)))
	assert.Equal(t, 2, CountAll(sw))
	assert.Equal(t, 2, CountPrimitives(sw))
	sw.Select(1)
	assert.Equal(t, 12, CountPrimitives(sw))
	assert.Zero(t, CountAll(nil))
}

func TestBoundingBoxAccumulatesTransforms(t *testing.T) {
	root, _ := sharedScene()
	box := BoundingBox(root)
	require.True(t, box.Valid())
	assert.True(t, box.Min.ApproxEqual(math.Vec3{X: -0.5, Y: -0.5}, 1e-6))
	assert.True(t, box.Max.ApproxEqual(math.Vec3{X: 2.5, Y: 0.5}, 1e-6))
}

func TestBoundingBoxEmptySentinel(t *testing.T) {
	assert.False(t, BoundingBox(NewGroup("")).Valid())
	assert.False(t, BoundingBox(nil).Valid())

	hidden := quadLeaf("")
	hidden.Hide()
	assert.False(t, BoundingBox(hidden).Valid())
}

func TestVertexDumpIsWorldSpace(t *testing.T) {
	root := NewGroup("root")
	tr := Attach(root, NewTranslation(math.Vec3{Z: 3}))
	tr.Add(NewManagedLeaf("", geom.Segment(math.Vec3{}, math.Vec3{X: 1})))

	verts := VertexDump(root)
	require.Len(t, verts, 2)
	assert.Equal(t, math.Vec3{Z: 3}, verts[0])
	assert.Equal(t, math.Vec3{X: 1, Z: 3}, verts[1])
}

func TestCheckForCycles(t *testing.T) {
	root := NewGroup("root")
	a := Attach(root, NewGroup("a"))
	b := Attach(root, NewGroup("b"))
	shared := Attach(a, NewGroup("shared"))
	b.Add(shared)
	assert.False(t, CheckForCycles(root), "a diamond is not a cycle")

	shared.Add(a)
	assert.True(t, CheckForCycles(root))
	assert.True(t, CheckStructure(root))
}

func TestCycleInInactiveBranch(t *testing.T) {
	sw := NewSwitcher("sw")
	sw.Add(quadLeaf(""))
	loop := Attach(sw, NewGroup("loop"))
	loop.Add(sw)

	assert.False(t, CheckForCycles(sw))
	assert.True(t, CheckStructure(sw))
	sw.Select(1)
	assert.True(t, CheckForCycles(sw))
}

func TestControlLoopIsNotStructuralCycle(t *testing.T) {
	root := NewGroup("root")
	c1 := Attach(root, NewControl("c1", 0))
	c2 := Attach(c1, NewControl("c2", 0))
	c2.Add(c1)
	assert.False(t, CheckForCycles(root))
	assert.False(t, CheckStructure(root))
}
