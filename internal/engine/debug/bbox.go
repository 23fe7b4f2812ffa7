// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 0.05

// Highlight is the default selection color.
var Highlight = render.Color{R: 1, G: 0.85, B: 0.2, A: 1}

// BoxWireframe returns line endpoints for the 12 edges of b, or nil for
// the empty box.
func BoxWireframe(b math.Box) []math.Vec3 {
	if !b.Valid() {
		return nil
	}
	lo, hi := b.Min, b.Max
	c := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
	return []math.Vec3{
		// Bottom face
		c(lo.X, lo.Y, lo.Z), c(hi.X, lo.Y, lo.Z),
		c(hi.X, lo.Y, lo.Z), c(hi.X, lo.Y, hi.Z),
		c(hi.X, lo.Y, hi.Z), c(lo.X, lo.Y, hi.Z),
		c(lo.X, lo.Y, hi.Z), c(lo.X, lo.Y, lo.Z),
		// Top face
		c(lo.X, hi.Y, lo.Z), c(hi.X, hi.Y, lo.Z),
		c(hi.X, hi.Y, lo.Z), c(hi.X, hi.Y, hi.Z),
		c(hi.X, hi.Y, hi.Z), c(lo.X, hi.Y, hi.Z),
		c(lo.X, hi.Y, hi.Z), c(lo.X, hi.Y, lo.Z),
		// Vertical edges
		c(lo.X, lo.Y, lo.Z), c(lo.X, hi.Y, lo.Z),
		c(hi.X, lo.Y, lo.Z), c(hi.X, hi.Y, lo.Z),
		c(hi.X, lo.Y, hi.Z), c(hi.X, hi.Y, hi.Z),
		c(lo.X, lo.Y, hi.Z), c(lo.X, hi.Y, hi.Z),
	}
}

// DrawBox emits a padded wireframe of the world-space box b. Lighting and
// texturing are switched off inside an attribute push so the scene state
// is untouched.
func DrawBox(sink render.Sink, b math.Box, color render.Color, padding float32) {
	lines := BoxWireframe(b.Pad(padding))
	if lines == nil {
		return
	}
	sink.PushAttrib()
	sink.Enable(render.Lighting, false)
	sink.Enable(render.Texturing, false)
	sink.LineWidth(2)
	sink.Begin(render.Lines)
	sink.Color(color)
	for _, v := range lines {
		sink.Vertex(v)
	}
	sink.End()
	sink.PopAttrib()
}
