package render

import "github.com/Faultbox/scenery/pkg/math"

// Geometry is an opaque, externally defined batch of primitives referenced
// by leaf nodes.
type Geometry interface {
	// Render emits the batch. Implementations may consult st (for example to
	// skip normals while lighting is off) but must not modify it.
	Render(st *State, sink Sink)

	Primitive() Primitive
	VertexCount() int
	PrimitiveCount() int
	Bounds() math.Box
	Vertices() []math.Vec3

	// AppendTo appends this batch's vertices to dst and reports whether the
	// two batches were compatible.
	AppendTo(dst Geometry) bool

	ApplyColor(c Color)
	ApplyModelMatrix(m math.Mat4)
	ApplyTexMatrix(m math.Mat4)

	Clone() Geometry
}

// Releaser is implemented by handles that hold external resources. Owned
// handles are released when their node is destroyed.
type Releaser interface {
	Release()
}
