package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

func TestPrimitiveCount(t *testing.T) {
	assert.Equal(t, 2, Quad().PrimitiveCount())
	assert.Equal(t, 12, Cube(1).PrimitiveCount())
	assert.Equal(t, 1, Segment(math.Vec3{}, math.Vec3{X: 1}).PrimitiveCount())

	strip := New(render.TriangleStrip).Add(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{X: 1, Y: 1})
	assert.Equal(t, 2, strip.PrimitiveCount())
	assert.Equal(t, 0, New(render.LineStrip).PrimitiveCount())
}

func TestBounds(t *testing.T) {
	b := Cube(2).Bounds()
	assert.Equal(t, math.Vec3{X: -1, Y: -1, Z: -1}, b.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, b.Max)
	assert.False(t, New(render.Points).Bounds().Valid())
}

func TestRenderHonorsState(t *testing.T) {
	q := Quad()
	st := render.DefaultState()

	rec := render.NewRecorder()
	q.Render(&st, rec)
	assert.Equal(t, 6, rec.Count(render.OpVertex))
	assert.Zero(t, rec.Count(render.OpNormal))
	assert.Zero(t, rec.Count(render.OpTexCoord))

	st.Set(render.Lighting, true)
	st.Set(render.Texturing, true)
	rec.Reset()
	q.Render(&st, rec)
	assert.Equal(t, 6, rec.Count(render.OpNormal))
	assert.Equal(t, 6, rec.Count(render.OpTexCoord))
}

func TestAppendTo(t *testing.T) {
	a, b := Quad(), Quad()
	assert.True(t, b.AppendTo(a))
	assert.Equal(t, 12, a.VertexCount())
	assert.False(t, a.AppendTo(a), "self append is refused")
	assert.False(t, Segment(math.Vec3{}, math.Vec3{X: 1}).AppendTo(a), "mode mismatch is refused")

	s1 := New(render.LineStrip).Add(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1})
	s2 := New(render.LineStrip).Add(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1})
	assert.False(t, s1.AppendTo(s2), "strips are never concatenated")
}

func TestApplyModelMatrix(t *testing.T) {
	q := Quad()
	q.ApplyModelMatrix(math.Translate(math.Vec3{X: 10}))
	b := q.Bounds()
	assert.InDelta(t, 9.5, b.Min.X, 1e-6)
	assert.InDelta(t, 10.5, b.Max.X, 1e-6)
	assert.Equal(t, math.Vec3{Z: 1}, q.Verts[0].Normal)
}

func TestApplyColorAndClone(t *testing.T) {
	q := Quad()
	c := q.Clone().(*Batch)
	q.ApplyColor(render.RGB(1, 0, 0))

	st := render.DefaultState()
	rec := render.NewRecorder()
	q.Render(&st, rec)
	assert.Equal(t, 7, rec.Count(render.OpColor), "six vertices plus the restore")
	cmds := rec.Commands()
	assert.Equal(t, []float32{1, 1, 1, 1}, cmds[len(cmds)-1].Args)

	rec.Reset()
	c.Render(&st, rec)
	assert.Zero(t, rec.Count(render.OpColor), "clone must not share vertex storage")
}

func TestApplyColorStopsAtFirstColoredVertex(t *testing.T) {
	b := New(render.Points).Add(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2})
	b.Verts[1].Color = render.RGB(0, 0, 1)
	b.Verts[1].HasColor = true

	b.ApplyColor(render.RGB(1, 0, 0))
	assert.Equal(t, render.RGB(1, 0, 0), b.Verts[0].Color)
	assert.Equal(t, render.RGB(0, 0, 1), b.Verts[1].Color)
	assert.False(t, b.Verts[2].HasColor)
	assert.False(t, b.Verts[3].HasColor)
}

func TestAppendKeepsInheritedColor(t *testing.T) {
	red := Quad()
	red.ApplyColor(render.RGB(1, 0, 0))
	plain := Quad()

	assert.False(t, plain.AppendTo(red), "plain vertices would pick up red")
	assert.True(t, Quad().AppendTo(plain))
	assert.True(t, red.Clone().AppendTo(plain))
	assert.False(t, Quad().AppendTo(plain), "plain now ends in red")
}

func TestRelease(t *testing.T) {
	q := Quad()
	q.Release()
	assert.True(t, q.Released())
	assert.Zero(t, q.VertexCount())
}
