package scenegraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

func TestSubgraphBuildsLazilyOnce(t *testing.T) {
	builds := 0
	sub := NewSubgraph("sub", func() Node {
		builds++
		g := NewGroup("inner")
		g.Add(quadLeaf(""))
		return g
	})
	sub.Add(quadLeaf(""))
	assert.False(t, sub.Built())
	assert.Zero(t, builds)

	assert.Len(t, filter(record(sub), render.OpVertex), 12)
	assert.Equal(t, 4, CountAll(sub))
	assert.Equal(t, 4, CountPrimitives(sub))
	assert.True(t, BoundingBox(sub).Valid())
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, sub.SubRoot().AsBase().Refs())
	assert.NotNil(t, Find(sub, "inner"))
}

func TestSubgraphReleaseAndRebuild(t *testing.T) {
	var roots []Node
	sub := NewSubgraph("sub", func() Node {
		g := NewGroup("")
		roots = append(roots, g)
		return g
	})
	first := sub.SubRoot()
	sub.Rebuild()
	assert.True(t, first.AsBase().Freed())
	second := sub.SubRoot()
	assert.NotSame(t, first, second)
	require.NoError(t, Release(sub))
	assert.True(t, second.AsBase().Freed())
	assert.Len(t, roots, 2)
}

func TestSubgraphUpdatesSubRoot(t *testing.T) {
	var anim *Animation
	sub := NewSubgraph("sub", func() Node {
		anim = NewAnimation("spin", Motion{Axis: math.Vec3{Y: 1}, Angle: 1}, 1)
		return anim
	})
	NewDriver(sub).Step(0.5)
	require.NotNil(t, anim)
	assert.Equal(t, float32(0.5), anim.Phase())
}

type ringSubgraph struct {
	Subgraph
	count int
}

func newRingSubgraph(count int) *ringSubgraph {
	r := &ringSubgraph{count: count}
	r.InitNode(r, "ring")
	return r
}

func (r *ringSubgraph) Build() Node {
	g := NewGroup("")
	for i := 0; i < r.count; i++ {
		tr := Attach(g, NewRotation(math.Vec3{Z: 1}, float32(i)))
		tr.Add(quadLeaf(""))
	}
	return g
}

func TestSubgraphBuildHook(t *testing.T) {
	r := newRingSubgraph(3)
	assert.Equal(t, 3, CountPrimitives(r)/2)
}

func TestOptimizingSubgraphOptimizes(t *testing.T) {
	sub := NewOptimizingSubgraph("opt", func() Node {
		g := NewGroup("")
		col := Attach(g, NewColor(render.RGB(1, 1, 0)))
		col.Add(quadLeaf(""))
		col.Add(quadLeaf(""))
		return g
	})
	root := sub.SubRoot()
	require.NotNil(t, root)
	require.NoError(t, sub.Err())
	assert.Equal(t, 2, CountAll(root))
	assert.IsType(t, &Container{}, root.AsBase().Child(0))
}

func TestOptimizingSubgraphDiscardsCycles(t *testing.T) {
	sub := NewOptimizingSubgraph("opt", func() Node {
		g := NewGroup("g")
		sw := Attach(g, NewSwitcher("sw"))
		sw.Add(quadLeaf(""))
		sw.Add(g)
		return g
	})
	assert.Nil(t, sub.SubRoot())
	require.Error(t, sub.Err())
	assert.True(t, errors.Is(sub.Err(), ErrCycle))
	assert.Equal(t, 1, CountAll(sub))
	assert.Empty(t, record(sub))

	sub.BuildFunc = func() Node { return quadLeaf("") }
	sub.Rebuild()
	assert.NoError(t, sub.Err())
	assert.NotNil(t, sub.SubRoot())
}
