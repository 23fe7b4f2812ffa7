package geom

import (
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

// Quad returns a unit quad in the XY plane as two triangles.
func Quad() *Batch {
	n := math.Vec3{Z: 1}
	b := New(render.Triangles).Add(n,
		math.Vec3{X: -0.5, Y: -0.5}, math.Vec3{X: 0.5, Y: -0.5}, math.Vec3{X: 0.5, Y: 0.5},
		math.Vec3{X: -0.5, Y: -0.5}, math.Vec3{X: 0.5, Y: 0.5}, math.Vec3{X: -0.5, Y: 0.5},
	)
	uvs := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i := range b.Verts {
		b.Verts[i].UV = uvs[i]
	}
	return b
}

// Cube returns an axis-aligned cube of the given edge length centered at
// the origin, as twelve triangles.
func Cube(size float32) *Batch {
	h := size / 2
	b := New(render.Triangles)
	faces := []struct {
		n    math.Vec3
		u, v math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{Z: 1}, math.Vec3{X: 1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{Y: 1}, math.Vec3{X: 1}},
	}
	for _, f := range faces {
		c := f.n.Scale(h)
		u, v := f.u.Scale(h), f.v.Scale(h)
		p0 := c.Sub(u).Sub(v)
		p1 := c.Add(u).Sub(v)
		p2 := c.Add(u).Add(v)
		p3 := c.Sub(u).Add(v)
		b.Add(f.n, p0, p1, p2, p0, p2, p3)
	}
	return b
}

// Segment returns a single line segment.
func Segment(a, b math.Vec3) *Batch {
	return New(render.Lines).Add(math.Vec3{}, a, b)
}
