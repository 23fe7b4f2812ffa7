// Package render defines the contract between the scene graph and whatever
// rasterizes it: a render-command sink, the explicit render state threaded
// through a traversal, and the opaque geometry buffer a leaf refers to.
package render

import "github.com/Faultbox/scenery/pkg/math"

// Primitive is the topology passed to Sink.Begin.
type Primitive uint8

const (
	Points Primitive = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	Quads
)

var primitiveNames = [...]string{"points", "lines", "line_strip", "triangles", "triangle_strip", "quads"}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "unknown"
}

// MatrixMode selects the matrix stack a matrix command applies to.
type MatrixMode uint8

const (
	ModelView MatrixMode = iota
	TextureMatrix
)

func (m MatrixMode) String() string {
	if m == TextureMatrix {
		return "texture"
	}
	return "modelview"
}

// Cap is a boolean piece of global render state.
type Cap uint8

const (
	DepthWrite Cap = iota
	DepthTest
	CullFace
	Blend
	AlphaTest
	Fogging
	Coloring
	Lighting
	Texturing
	numCaps
)

var capNames = [...]string{
	"depth_write", "depth_test", "cull_face", "blend", "alpha_test",
	"fog", "coloring", "lighting", "texturing",
}

func (c Cap) String() string {
	if c < numCaps {
		return capNames[c]
	}
	return "unknown"
}

// Sink receives the command stream of one render traversal. Every
// PushMatrix/PushAttrib is matched by a Pop in the same traversal.
type Sink interface {
	Begin(p Primitive)
	End()
	Vertex(v math.Vec3)
	Color(c Color)
	Normal(n math.Vec3)
	TexCoord(uv math.Vec2)

	PushMatrix(mode MatrixMode)
	MultMatrix(mode MatrixMode, m math.Mat4)
	PopMatrix(mode MatrixMode)

	// PushAttrib saves every piece of toggleable state; PopAttrib restores it.
	PushAttrib()
	PopAttrib()
	Enable(c Cap, on bool)
	LineWidth(w float32)
	Material(m Material)
	Light(index int, l Light)
	Texture(dim int, handle uint32)
	ClipPlane(index int, c ClipPlane)
	Fog(f Fog)
}
