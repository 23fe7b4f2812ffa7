package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/render"
)

// Leaf draws one geometry buffer. A managed leaf owns its buffer and
// releases it on destruction; otherwise the buffer is borrowed.
type Leaf struct {
	Base
	geom    render.Geometry
	managed bool
}

// NewLeaf creates a leaf borrowing g.
func NewLeaf(name string, g render.Geometry) *Leaf {
	l := &Leaf{geom: g}
	l.InitNode(l, name)
	return l
}

// NewManagedLeaf creates a leaf owning g.
func NewManagedLeaf(name string, g render.Geometry) *Leaf {
	l := NewLeaf(name, g)
	l.managed = true
	return l
}

func (l *Leaf) Kind() string { return "leaf" }

// Geometry returns the buffer.
func (l *Leaf) Geometry() render.Geometry { return l.geom }

// Managed reports whether the leaf owns its buffer.
func (l *Leaf) Managed() bool { return l.managed }

// Geometries implements Drawable.
func (l *Leaf) Geometries() []render.Geometry {
	if l.geom == nil {
		return nil
	}
	return []render.Geometry{l.geom}
}

// RenderNode draws the buffer, then any children.
func (l *Leaf) RenderNode(rc *RenderContext) {
	if l.geom != nil {
		l.geom.Render(&rc.State, rc.Sink)
	}
	RenderChildren(l, rc)
}

// Convert turns a borrowing leaf into a managed leaf holding a private
// copy, which the optimizer may then modify.
func (l *Leaf) Convert() Node {
	if l.managed || l.geom == nil || len(l.children) > 0 {
		return nil
	}
	return NewManagedLeaf(l.Name, l.geom.Clone())
}

// OnRelease implements Disposer.
func (l *Leaf) OnRelease() {
	if l.managed && l.geom != nil {
		releaseHandle(l.geom)
	}
	l.geom = nil
}

func (l *Leaf) ExportAttrs() []Attr {
	attrs := []Attr{{"managed", l.managed}}
	if l.geom != nil {
		attrs = append(attrs,
			Attr{"primitive", l.geom.Primitive().String()},
			Attr{"vertices", l.geom.VertexCount()})
	}
	return attrs
}

// detach hands the buffer to the caller.
func (l *Leaf) detach() []render.Geometry {
	g := l.Geometries()
	l.geom = nil
	l.managed = false
	return g
}

// Container draws several buffers in order.
type Container struct {
	Base
	geoms   []render.Geometry
	managed bool
}

// NewContainer creates a container borrowing its buffers.
func NewContainer(name string, gs ...render.Geometry) *Container {
	c := &Container{geoms: gs}
	c.InitNode(c, name)
	return c
}

// NewManagedContainer creates a container owning its buffers.
func NewManagedContainer(name string, gs ...render.Geometry) *Container {
	c := NewContainer(name, gs...)
	c.managed = true
	return c
}

func (c *Container) Kind() string { return "container" }

// Managed reports whether the container owns its buffers.
func (c *Container) Managed() bool { return c.managed }

// AddGeometry appends g, concatenating it onto the last buffer when the two
// are compatible. A managed container releases g once it was merged.
func (c *Container) AddGeometry(g render.Geometry) {
	if g == nil {
		return
	}
	if n := len(c.geoms); n > 0 && c.managed && g.AppendTo(c.geoms[n-1]) {
		releaseHandle(g)
		return
	}
	c.geoms = append(c.geoms, g)
}

// Geometries implements Drawable.
func (c *Container) Geometries() []render.Geometry { return c.geoms }

// RenderNode draws every buffer, then any children.
func (c *Container) RenderNode(rc *RenderContext) {
	for _, g := range c.geoms {
		g.Render(&rc.State, rc.Sink)
	}
	RenderChildren(c, rc)
}

// OnRelease implements Disposer.
func (c *Container) OnRelease() {
	if c.managed {
		for _, g := range c.geoms {
			releaseHandle(g)
		}
	}
	c.geoms = nil
}

func (c *Container) ExportAttrs() []Attr {
	verts := 0
	for _, g := range c.geoms {
		verts += g.VertexCount()
	}
	return []Attr{{"managed", c.managed}, {"buffers", len(c.geoms)}, {"vertices", verts}}
}

func (c *Container) detach() []render.Geometry {
	g := c.geoms
	c.geoms = nil
	c.managed = false
	return g
}

// ownedDrawable is implemented by leaves and containers.
type ownedDrawable interface {
	Drawable
	Managed() bool
	detach() []render.Geometry
}

// foldableDrawable reports whether the optimizer may bake state into n.
func foldableDrawable(n Node) bool {
	d, ok := n.(ownedDrawable)
	return ok && plain(n) && d.Managed() && len(d.Geometries()) > 0 &&
		n.AsBase().NumChildren() == 0
}
