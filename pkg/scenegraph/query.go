package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/math"
)

// visit walks the visible, enabled part of the subgraph the way a render
// does, with the accumulated model matrix.
func visit(n Node, m math.Mat4, fn func(n Node, m math.Mat4)) {
	b := n.AsBase()
	if !active(b) || b.hidden {
		return
	}
	if t, ok := n.(Transformer); ok {
		m = m.Mul(t.Matrix())
	}
	fn(n, m)
	eachFollowed(n, func(c Node) { visit(c, m, fn) })
}

// BoundingBox returns the world box around every visible geometry under n,
// or the empty box.
func BoundingBox(n Node) math.Box {
	box := math.EmptyBox()
	if n == nil {
		return box
	}
	visit(n, math.Identity(), func(n Node, m math.Mat4) {
		if d, ok := n.(Drawable); ok {
			for _, g := range d.Geometries() {
				box = box.Union(g.Bounds().Transform(m))
			}
		}
	})
	return box
}

// VertexDump returns every visible vertex under n in world space.
func VertexDump(n Node) []math.Vec3 {
	var out []math.Vec3
	if n == nil {
		return out
	}
	visit(n, math.Identity(), func(n Node, m math.Mat4) {
		if d, ok := n.(Drawable); ok {
			for _, g := range d.Geometries() {
				for _, v := range g.Vertices() {
					out = append(out, m.TransformPoint(v))
				}
			}
		}
	})
	return out
}

// CountPrimitives sums the primitives drawn under n.
func CountPrimitives(n Node) int {
	return countGeometry(n, func(d Drawable) (k int) {
		for _, g := range d.Geometries() {
			k += g.PrimitiveCount()
		}
		return k
	})
}

// CountVertices sums the vertices drawn under n.
func CountVertices(n Node) int {
	return countGeometry(n, func(d Drawable) (k int) {
		for _, g := range d.Geometries() {
			k += g.VertexCount()
		}
		return k
	})
}

func countGeometry(n Node, count func(Drawable) int) int {
	total := 0
	if n == nil {
		return total
	}
	visit(n, math.Identity(), func(n Node, _ math.Mat4) {
		if d, ok := n.(Drawable); ok {
			total += count(d)
		}
	})
	return total
}

// CountAll counts node visits over followed edges, so a shared node counts
// once per path reaching it.
func CountAll(n Node) int {
	if n == nil || n.AsBase().freed {
		return 0
	}
	total := 1
	eachFollowed(n, func(c Node) { total += CountAll(c) })
	return total
}

// CountAllOnce counts distinct nodes reachable over followed edges.
func CountAllOnce(n Node) int {
	seen := make(map[*Base]bool)
	var count func(Node)
	count = func(n Node) {
		b := n.AsBase()
		if seen[b] || b.freed {
			return
		}
		seen[b] = true
		eachFollowed(n, count)
	}
	if n != nil {
		count(n)
	}
	return len(seen)
}
