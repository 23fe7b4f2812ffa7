package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/render"
)

// Stateful is implemented by state nodes: kinds that change render state
// for their subgraph and restore it afterwards.
type Stateful interface {
	// Apply changes st and emits the matching sink commands.
	Apply(st *render.State, sink render.Sink)
	// Commutes reports whether the state is independent of the model-view
	// matrix, so it may move past transforms.
	Commutes() bool
}

func renderStateful(n Node, rc *RenderContext) {
	rc.WithState(n, n.(Stateful).Apply)
}

// Toggle switches one capability on or off for its subgraph.
type Toggle struct {
	Base
	Cap render.Cap
	On  bool
}

// NewToggle creates a toggle node.
func NewToggle(c render.Cap, on bool) *Toggle {
	t := &Toggle{Cap: c, On: on}
	t.InitNode(t, "")
	return t
}

func NewDepthWrite(on bool) *Toggle { return NewToggle(render.DepthWrite, on) }
func NewDepthTest(on bool) *Toggle  { return NewToggle(render.DepthTest, on) }
func NewCulling(on bool) *Toggle    { return NewToggle(render.CullFace, on) }
func NewBlending(on bool) *Toggle   { return NewToggle(render.Blend, on) }
func NewAlphaTest(on bool) *Toggle  { return NewToggle(render.AlphaTest, on) }
func NewColoring(on bool) *Toggle   { return NewToggle(render.Coloring, on) }
func NewLighting(on bool) *Toggle   { return NewToggle(render.Lighting, on) }
func NewTexturing(on bool) *Toggle  { return NewToggle(render.Texturing, on) }

func (t *Toggle) Kind() string                 { return "toggle" }
func (t *Toggle) Commutes() bool               { return true }
func (t *Toggle) RenderNode(rc *RenderContext) { renderStateful(t, rc) }
func (t *Toggle) ExportAttrs() []Attr {
	return []Attr{{"cap", t.Cap.String()}, {"on", t.On}}
}

func (t *Toggle) Apply(st *render.State, sink render.Sink) {
	st.Set(t.Cap, t.On)
	sink.Enable(t.Cap, t.On)
}

// FogNode turns on linear fog with the given parameters.
type FogNode struct {
	Base
	Fog render.Fog
}

// NewFog creates a fog node.
func NewFog(f render.Fog) *FogNode {
	n := &FogNode{Fog: f}
	n.InitNode(n, "")
	return n
}

func (f *FogNode) Kind() string                 { return "fog" }
func (f *FogNode) Commutes() bool               { return true }
func (f *FogNode) RenderNode(rc *RenderContext) { renderStateful(f, rc) }
func (f *FogNode) ExportAttrs() []Attr {
	return []Attr{{"color", f.Fog.Color.Array()}, {"start", f.Fog.Start}, {"end", f.Fog.End}}
}

func (f *FogNode) Apply(st *render.State, sink render.Sink) {
	st.Set(render.Fogging, true)
	st.Fog = f.Fog
	sink.Enable(render.Fogging, true)
	sink.Fog(f.Fog)
}

// LineWidthNode sets the rasterized line width.
type LineWidthNode struct {
	Base
	Width float32
}

// NewLineWidth creates a line width node.
func NewLineWidth(w float32) *LineWidthNode {
	n := &LineWidthNode{Width: w}
	n.InitNode(n, "")
	return n
}

func (l *LineWidthNode) Kind() string                 { return "linewidth" }
func (l *LineWidthNode) Commutes() bool               { return true }
func (l *LineWidthNode) RenderNode(rc *RenderContext) { renderStateful(l, rc) }
func (l *LineWidthNode) ExportAttrs() []Attr          { return []Attr{{"width", l.Width}} }

func (l *LineWidthNode) Apply(st *render.State, sink render.Sink) {
	st.LineWidth = l.Width
	sink.LineWidth(l.Width)
}

// ColorNode sets the current color.
type ColorNode struct {
	Base
	Color render.Color
}

// NewColor creates a color node.
func NewColor(c render.Color) *ColorNode {
	n := &ColorNode{Color: c}
	n.InitNode(n, "")
	return n
}

func (c *ColorNode) Kind() string                 { return "color" }
func (c *ColorNode) Commutes() bool               { return true }
func (c *ColorNode) RenderNode(rc *RenderContext) { renderStateful(c, rc) }
func (c *ColorNode) ExportAttrs() []Attr          { return []Attr{{"rgba", c.Color.Array()}} }

func (c *ColorNode) Apply(st *render.State, sink render.Sink) {
	st.Color = c.Color
	sink.Color(c.Color)
}

// Fold bakes the color into owned drawable children.
func (c *ColorNode) Fold() bool {
	if len(c.children) == 0 {
		return false
	}
	for _, k := range c.children {
		if !foldableDrawable(k) {
			return false
		}
	}
	for _, k := range c.children {
		for _, g := range k.(Drawable).Geometries() {
			g.ApplyColor(c.Color)
		}
	}
	return true
}

// MaterialNode sets the surface material.
type MaterialNode struct {
	Base
	Material render.Material
}

// NewMaterial creates a material node.
func NewMaterial(m render.Material) *MaterialNode {
	n := &MaterialNode{Material: m}
	n.InitNode(n, "")
	return n
}

func (m *MaterialNode) Kind() string                 { return "material" }
func (m *MaterialNode) Commutes() bool               { return true }
func (m *MaterialNode) RenderNode(rc *RenderContext) { renderStateful(m, rc) }
func (m *MaterialNode) ExportAttrs() []Attr {
	return []Attr{
		{"diffuse", m.Material.Diffuse.Array()},
		{"specular", m.Material.Specular.Array()},
		{"shininess", m.Material.Shininess},
	}
}

func (m *MaterialNode) Apply(st *render.State, sink render.Sink) {
	st.Material = m.Material
	sink.Material(m.Material)
}

// LightNode switches on one light slot and turns lighting on. The light
// position is taken in the current model-view space.
type LightNode struct {
	Base
	Index int
	Light render.Light
}

// NewLight creates a light node for slot index.
func NewLight(index int, l render.Light) *LightNode {
	l.Enabled = true
	n := &LightNode{Index: index, Light: l}
	n.InitNode(n, "")
	return n
}

func (l *LightNode) Kind() string                 { return "light" }
func (l *LightNode) Commutes() bool               { return false }
func (l *LightNode) RenderNode(rc *RenderContext) { renderStateful(l, rc) }
func (l *LightNode) ExportAttrs() []Attr {
	return []Attr{{"index", l.Index}, {"position", l.Light.Position}}
}

func (l *LightNode) Apply(st *render.State, sink render.Sink) {
	if l.Index < 0 || l.Index >= render.MaxLights {
		return
	}
	st.Lights[l.Index] = l.Light
	st.Set(render.Lighting, true)
	sink.Enable(render.Lighting, true)
	sink.Light(l.Index, l.Light)
}

// TextureNode binds a texture handle and turns texturing on.
type TextureNode struct {
	Base
	// Dim is 2 or 3.
	Dim    int
	Handle uint32
}

// NewTexture creates a texture node.
func NewTexture(dim int, handle uint32) *TextureNode {
	n := &TextureNode{Dim: dim, Handle: handle}
	n.InitNode(n, "")
	return n
}

func (t *TextureNode) Kind() string                 { return "texture" }
func (t *TextureNode) Commutes() bool               { return true }
func (t *TextureNode) RenderNode(rc *RenderContext) { renderStateful(t, rc) }
func (t *TextureNode) ExportAttrs() []Attr {
	return []Attr{{"dim", t.Dim}, {"handle", t.Handle}}
}

func (t *TextureNode) Apply(st *render.State, sink render.Sink) {
	switch t.Dim {
	case 2:
		st.Texture2D = t.Handle
	case 3:
		st.Texture3D = t.Handle
	default:
		return
	}
	st.Set(render.Texturing, true)
	sink.Enable(render.Texturing, true)
	sink.Texture(t.Dim, t.Handle)
}

// ClipPlaneNode enables one user clip plane given in model space.
type ClipPlaneNode struct {
	Base
	Index int
	Plane render.ClipPlane
}

// NewClipPlane creates a clip plane node for slot index.
func NewClipPlane(index int, c render.ClipPlane) *ClipPlaneNode {
	c.Enabled = true
	n := &ClipPlaneNode{Index: index, Plane: c}
	n.InitNode(n, "")
	return n
}

func (c *ClipPlaneNode) Kind() string                 { return "clip" }
func (c *ClipPlaneNode) Commutes() bool               { return false }
func (c *ClipPlaneNode) RenderNode(rc *RenderContext) { renderStateful(c, rc) }
func (c *ClipPlaneNode) ExportAttrs() []Attr {
	return []Attr{{"index", c.Index}, {"plane", c.Plane.Plane.Array()}}
}

func (c *ClipPlaneNode) Apply(st *render.State, sink render.Sink) {
	if c.Index < 0 || c.Index >= render.MaxClipPlanes {
		return
	}
	st.ClipPlanes[c.Index] = c.Plane
	sink.ClipPlane(c.Index, c.Plane)
}
