// Package geom provides Batch, a plain in-memory vertex batch implementing
// render.Geometry. It is the geometry buffer used by the demo scene and the
// tests; real applications plug their own buffers into leaf nodes.
package geom

import (
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

// Vertex is one batch vertex. Color is only emitted when HasColor is set.
type Vertex struct {
	Pos      math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    render.Color
	HasColor bool
}

// Batch is a list of vertices drawn with one primitive mode.
type Batch struct {
	Mode  render.Primitive
	Verts []Vertex

	released bool
}

var _ render.Geometry = (*Batch)(nil)

// New creates an empty batch.
func New(mode render.Primitive) *Batch {
	return &Batch{Mode: mode}
}

// Add appends vertices at the given positions with a shared normal.
func (b *Batch) Add(normal math.Vec3, positions ...math.Vec3) *Batch {
	for _, p := range positions {
		b.Verts = append(b.Verts, Vertex{Pos: p, Normal: normal})
	}
	return b
}

// Render emits the batch. Normals are sent only while lighting is on and
// texture coordinates only while texturing is on. Vertex colors do not
// outlive the batch: the inherited color is restored after drawing.
func (b *Batch) Render(st *render.State, sink render.Sink) {
	if len(b.Verts) == 0 {
		return
	}
	lit := st.Enabled(render.Lighting)
	textured := st.Enabled(render.Texturing)
	colored := false
	sink.Begin(b.Mode)
	for _, v := range b.Verts {
		if v.HasColor {
			sink.Color(v.Color)
			colored = true
		}
		if lit {
			sink.Normal(v.Normal)
		}
		if textured {
			sink.TexCoord(v.UV)
		}
		sink.Vertex(v.Pos)
	}
	sink.End()
	if colored {
		sink.Color(st.Color)
	}
}

// Primitive returns the batch topology.
func (b *Batch) Primitive() render.Primitive { return b.Mode }

// VertexCount returns the number of vertices.
func (b *Batch) VertexCount() int { return len(b.Verts) }

// PrimitiveCount returns the number of primitives the vertices form.
func (b *Batch) PrimitiveCount() int {
	n := len(b.Verts)
	switch b.Mode {
	case render.Points:
		return n
	case render.Lines:
		return n / 2
	case render.LineStrip:
		return max(n-1, 0)
	case render.Triangles:
		return n / 3
	case render.TriangleStrip:
		return max(n-2, 0)
	case render.Quads:
		return n / 4
	}
	return 0
}

// Bounds returns the box around all vertex positions, or the empty box.
func (b *Batch) Bounds() math.Box {
	box := math.EmptyBox()
	for _, v := range b.Verts {
		box = box.Extend(v.Pos)
	}
	return box
}

// Vertices returns the vertex positions.
func (b *Batch) Vertices() []math.Vec3 {
	out := make([]math.Vec3, len(b.Verts))
	for i, v := range b.Verts {
		out[i] = v.Pos
	}
	return out
}

// AppendTo appends the vertices to dst when dst is a Batch of the same
// independent-primitive mode. Strips cannot be concatenated, and neither
// can a batch whose leading vertices inherit the color into one that sets
// vertex colors.
func (b *Batch) AppendTo(dst render.Geometry) bool {
	d, ok := dst.(*Batch)
	if !ok || d == b || d.Mode != b.Mode {
		return false
	}
	if len(b.Verts) > 0 && !b.Verts[0].HasColor && d.colored() {
		return false
	}
	switch b.Mode {
	case render.LineStrip, render.TriangleStrip:
		return false
	}
	d.Verts = append(d.Verts, b.Verts...)
	return true
}

// ApplyColor bakes c into the leading vertices that would draw with the
// inherited color. Vertices after the first colored one keep drawing with
// that vertex's color.
func (b *Batch) ApplyColor(c render.Color) {
	for i := range b.Verts {
		if b.Verts[i].HasColor {
			return
		}
		b.Verts[i].Color = c
		b.Verts[i].HasColor = true
	}
}

func (b *Batch) colored() bool {
	for _, v := range b.Verts {
		if v.HasColor {
			return true
		}
	}
	return false
}

// ApplyModelMatrix transforms positions and normals by m.
func (b *Batch) ApplyModelMatrix(m math.Mat4) {
	for i := range b.Verts {
		v := &b.Verts[i]
		v.Pos = m.TransformPoint(v.Pos)
		v.Normal = m.TransformNormal(v.Normal)
	}
}

// ApplyTexMatrix transforms texture coordinates by m.
func (b *Batch) ApplyTexMatrix(m math.Mat4) {
	for i := range b.Verts {
		v := &b.Verts[i]
		p := m.TransformPoint(math.Vec3{X: v.UV.X, Y: v.UV.Y})
		v.UV = math.Vec2{X: p.X, Y: p.Y}
	}
}

// Clone returns a deep copy.
func (b *Batch) Clone() render.Geometry {
	c := &Batch{Mode: b.Mode, Verts: make([]Vertex, len(b.Verts))}
	copy(c.Verts, b.Verts)
	return c
}

// Release drops the vertex storage.
func (b *Batch) Release() {
	b.Verts = nil
	b.released = true
}

// Released reports whether Release was called.
func (b *Batch) Released() bool { return b.released }
