package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/physics"
	"github.com/Faultbox/scenery/pkg/render"
)

// Translation moves its subgraph by Offset.
type Translation struct {
	Base
	Offset math.Vec3
}

// NewTranslation creates a translation node.
func NewTranslation(offset math.Vec3) *Translation {
	t := &Translation{Offset: offset}
	t.InitNode(t, "")
	return t
}

func (t *Translation) Kind() string                 { return "translation" }
func (t *Translation) Matrix() math.Mat4            { return math.Translate(t.Offset) }
func (t *Translation) RenderNode(rc *RenderContext) { rc.WithTransform(t, t.Matrix()) }
func (t *Translation) Convert() Node                { return convertTransform(t, t.Matrix()) }
func (t *Translation) ExportAttrs() []Attr          { return []Attr{{"offset", t.Offset.Array()}} }

// Rotation rotates its subgraph by Angle radians around Axis.
type Rotation struct {
	Base
	Axis  math.Vec3
	Angle float32
}

// NewRotation creates a rotation node.
func NewRotation(axis math.Vec3, angle float32) *Rotation {
	r := &Rotation{Axis: axis, Angle: angle}
	r.InitNode(r, "")
	return r
}

func (r *Rotation) Kind() string                 { return "rotation" }
func (r *Rotation) Matrix() math.Mat4            { return math.Rotate(r.Axis, r.Angle) }
func (r *Rotation) RenderNode(rc *RenderContext) { rc.WithTransform(r, r.Matrix()) }
func (r *Rotation) Convert() Node                { return convertTransform(r, r.Matrix()) }
func (r *Rotation) ExportAttrs() []Attr {
	return []Attr{{"axis", r.Axis.Array()}, {"angle", r.Angle}}
}

// Scaling scales its subgraph per axis.
type Scaling struct {
	Base
	Factor math.Vec3
}

// NewScaling creates a scaling node.
func NewScaling(factor math.Vec3) *Scaling {
	s := &Scaling{Factor: factor}
	s.InitNode(s, "")
	return s
}

func (s *Scaling) Kind() string                 { return "scaling" }
func (s *Scaling) Matrix() math.Mat4            { return math.Scale(s.Factor) }
func (s *Scaling) RenderNode(rc *RenderContext) { rc.WithTransform(s, s.Matrix()) }
func (s *Scaling) Convert() Node                { return convertTransform(s, s.Matrix()) }
func (s *Scaling) ExportAttrs() []Attr          { return []Attr{{"factor", s.Factor.Array()}} }

// MatrixTransform applies an arbitrary model matrix.
type MatrixTransform struct {
	Base
	M math.Mat4
}

// NewMatrixTransform creates a matrix transform node.
func NewMatrixTransform(m math.Mat4) *MatrixTransform {
	t := &MatrixTransform{M: m}
	t.InitNode(t, "")
	return t
}

func (t *MatrixTransform) Kind() string                 { return "matrix" }
func (t *MatrixTransform) Matrix() math.Mat4            { return t.M }
func (t *MatrixTransform) RenderNode(rc *RenderContext) { rc.WithTransform(t, t.M) }
func (t *MatrixTransform) ExportAttrs() []Attr          { return []Attr{{"matrix", [16]float32(t.M)}} }

// Fold bakes the matrix into children that are owned drawables or matrix
// transforms. It changes nothing and returns false unless every child
// qualifies.
func (t *MatrixTransform) Fold() bool {
	if len(t.children) == 0 {
		return false
	}
	for _, c := range t.children {
		if _, ok := c.(*MatrixTransform); ok && plain(c) {
			continue
		}
		if !foldableDrawable(c) {
			return false
		}
	}
	for _, c := range t.children {
		if mt, ok := c.(*MatrixTransform); ok {
			mt.M = t.M.Mul(mt.M)
			continue
		}
		for _, g := range c.(Drawable).Geometries() {
			g.ApplyModelMatrix(t.M)
		}
	}
	return true
}

func convertTransform(n Node, m math.Mat4) Node {
	mt := NewMatrixTransform(m)
	mt.Name = n.AsBase().Name
	return mt
}

// TexTransform applies M to the texture matrix of its subgraph.
type TexTransform struct {
	Base
	M math.Mat4
}

// NewTexTransform creates a texture matrix node.
func NewTexTransform(m math.Mat4) *TexTransform {
	t := &TexTransform{M: m}
	t.InitNode(t, "")
	return t
}

func (t *TexTransform) Kind() string        { return "texmatrix" }
func (t *TexTransform) ExportAttrs() []Attr { return []Attr{{"matrix", [16]float32(t.M)}} }

// RenderNode implements Renderer.
func (t *TexTransform) RenderNode(rc *RenderContext) {
	rc.Sink.PushMatrix(render.TextureMatrix)
	rc.Sink.MultMatrix(render.TextureMatrix, t.M)
	RenderChildren(t, rc)
	rc.Sink.PopMatrix(render.TextureMatrix)
}

// Fold bakes the texture matrix into owned drawable children.
func (t *TexTransform) Fold() bool {
	if len(t.children) == 0 {
		return false
	}
	for _, c := range t.children {
		if !foldableDrawable(c) {
			return false
		}
	}
	for _, c := range t.children {
		for _, g := range c.(Drawable).Geometries() {
			g.ApplyTexMatrix(t.M)
		}
	}
	return true
}

// BodyTransform takes its matrix from a physics body every frame. A managed
// body is released with the node.
type BodyTransform struct {
	Base
	Body    physics.Body
	managed bool
}

// NewBodyTransform creates a node reading a borrowed body.
func NewBodyTransform(name string, body physics.Body) *BodyTransform {
	t := &BodyTransform{Body: body}
	t.InitNode(t, name)
	return t
}

// NewManagedBodyTransform creates a node owning body.
func NewManagedBodyTransform(name string, body physics.Body) *BodyTransform {
	t := NewBodyTransform(name, body)
	t.managed = true
	return t
}

func (t *BodyTransform) Kind() string { return "body" }

// Matrix implements Transformer.
func (t *BodyTransform) Matrix() math.Mat4 {
	if t.Body == nil {
		return math.Identity()
	}
	return t.Body.Transform()
}

func (t *BodyTransform) RenderNode(rc *RenderContext) { rc.WithTransform(t, t.Matrix()) }

// OnRelease implements Disposer.
func (t *BodyTransform) OnRelease() {
	if t.managed && t.Body != nil {
		releaseHandle(t.Body)
	}
	t.Body = nil
}

func (t *BodyTransform) ExportAttrs() []Attr {
	return []Attr{{"managed", t.managed}, {"position", t.Matrix().Translation().Array()}}
}
