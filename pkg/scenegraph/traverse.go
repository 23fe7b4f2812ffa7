package scenegraph

import (
	"sort"

	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

// Capability interfaces consulted by the traversal families.
type (
	// Initializer runs once, lazily, on the first pre-render or pre-update
	// pass that reaches the node.
	Initializer interface {
		OnInit()
	}

	// Renderer replaces the default "render followed children" body.
	// Implementations call RenderChildren themselves.
	Renderer interface {
		RenderNode(rc *RenderContext)
	}

	// PostRenderer runs after the render pass of a frame.
	PostRenderer interface {
		PostRenderNode()
	}

	// Updater advances per-frame state. It runs at most once per node per
	// frame and never while the node is disabled.
	Updater interface {
		UpdateNode(dt float32)
	}

	// Settler flushes pending signals during Settle.
	Settler interface {
		SettleNode()
	}

	// Deliverer consumes signals armed by its sources during Deliver.
	Deliverer interface {
		DeliverNode()
	}

	// Transformer contributes a model-view matrix to its subgraph.
	Transformer interface {
		Matrix() math.Mat4
	}

	// Drawable exposes the geometry buffers a node draws.
	Drawable interface {
		Geometries() []render.Geometry
	}

	// SubRooter exposes a child outside the child list, built on demand.
	SubRooter interface {
		SubRoot() Node
	}

	// ControlLinker marks kinds whose children are control-signal targets
	// rather than part of the rendered structure.
	ControlLinker interface {
		ControlLinks() bool
	}
)

// Link classifies a parent to child edge.
type Link uint8

const (
	LinkChild Link = iota
	LinkControl
	LinkSubRoot
)

// Edge is one outgoing edge of a node.
type Edge struct {
	Child    Node
	Index    int
	Link     Link
	Followed bool
}

// Edges lists every outgoing edge of n including the sub-root of subgraph
// nodes. Index is -1 for the sub-root edge.
func Edges(n Node) []Edge {
	b := n.AsBase()
	link := LinkChild
	if cl, ok := n.(ControlLinker); ok && cl.ControlLinks() {
		link = LinkControl
	}
	out := make([]Edge, 0, len(b.children)+1)
	for i, c := range b.children {
		out = append(out, Edge{Child: c, Index: i, Link: link, Followed: n.Follow(i)})
	}
	if sr, ok := n.(SubRooter); ok {
		if r := sr.SubRoot(); r != nil {
			out = append(out, Edge{Child: r, Index: -1, Link: LinkSubRoot, Followed: true})
		}
	}
	return out
}

// eachFollowed calls fn for every followed child of n, then the sub-root.
func eachFollowed(n Node, fn func(c Node)) {
	b := n.AsBase()
	for i, c := range b.children {
		if n.Follow(i) {
			fn(c)
		}
	}
	if sr, ok := n.(SubRooter); ok {
		if r := sr.SubRoot(); r != nil {
			fn(r)
		}
	}
}

// walkAll visits every node reachable from n over all edges once, in depth
// first pre-order. fn returns false to stop the walk.
func walkAll(n Node, fn func(Node) bool) {
	seen := make(map[*Base]bool)
	var visit func(Node) bool
	visit = func(n Node) bool {
		b := n.AsBase()
		if seen[b] || b.freed {
			return true
		}
		seen[b] = true
		if !fn(n) {
			return false
		}
		for _, e := range Edges(n) {
			if !visit(e.Child) {
				return false
			}
		}
		return true
	}
	visit(n)
}

func active(b *Base) bool {
	return !b.freed && b.enabled
}

func lazyInit(n Node) {
	b := n.AsBase()
	if b.inited {
		return
	}
	b.inited = true
	if i, ok := n.(Initializer); ok {
		i.OnInit()
	}
}

// RenderContext carries the explicit render state of one traversal.
type RenderContext struct {
	Sink  render.Sink
	State render.State
	// Eye is the world-space viewer position, used by LOD selection.
	Eye math.Vec3
	// Hook, when set, wraps the rendering of every visited node. It must
	// call next exactly once to render the node, or not at all to skip it.
	Hook func(n Node, next func())

	stack []math.Mat4
}

// NewRenderContext returns a context at the default state with an identity
// model matrix.
func NewRenderContext(sink render.Sink) *RenderContext {
	return &RenderContext{
		Sink:  sink,
		State: render.DefaultState(),
		stack: []math.Mat4{math.Identity()},
	}
}

// Matrix returns the accumulated model matrix of the current node.
func (rc *RenderContext) Matrix() math.Mat4 {
	if len(rc.stack) == 0 {
		return math.Identity()
	}
	return rc.stack[len(rc.stack)-1]
}

// PushTransform multiplies m onto the model-view matrix.
func (rc *RenderContext) PushTransform(m math.Mat4) {
	rc.stack = append(rc.stack, rc.Matrix().Mul(m))
	rc.Sink.PushMatrix(render.ModelView)
	rc.Sink.MultMatrix(render.ModelView, m)
}

// PopTransform undoes the last PushTransform.
func (rc *RenderContext) PopTransform() {
	if len(rc.stack) > 1 {
		rc.stack = rc.stack[:len(rc.stack)-1]
	}
	rc.Sink.PopMatrix(render.ModelView)
}

// WithState saves the attribute state, lets apply change it, renders the
// followed children of n and restores the state.
func (rc *RenderContext) WithState(n Node, apply func(st *render.State, sink render.Sink)) {
	saved := rc.State
	rc.Sink.PushAttrib()
	apply(&rc.State, rc.Sink)
	RenderChildren(n, rc)
	rc.Sink.PopAttrib()
	rc.State = saved
}

// WithTransform renders the followed children of n under m.
func (rc *RenderContext) WithTransform(n Node, m math.Mat4) {
	rc.PushTransform(m)
	RenderChildren(n, rc)
	rc.PopTransform()
}

// PreRender runs lazy initialization over the subgraph of n.
func PreRender(n Node) {
	walkAll(n, func(c Node) bool {
		lazyInit(c)
		return true
	})
}

// Render draws n and its followed descendants into rc. Hidden and disabled
// nodes are skipped with their subgraphs.
func Render(n Node, rc *RenderContext) {
	if n == nil {
		return
	}
	b := n.AsBase()
	if !active(b) || b.hidden {
		return
	}
	if rc.Hook != nil {
		rc.Hook(n, func() { renderBody(n, rc) })
		return
	}
	renderBody(n, rc)
}

func renderBody(n Node, rc *RenderContext) {
	if r, ok := n.(Renderer); ok {
		r.RenderNode(rc)
		return
	}
	RenderChildren(n, rc)
}

// RenderChildren renders the followed children of n, then its sub-root.
func RenderChildren(n Node, rc *RenderContext) {
	eachFollowed(n, func(c Node) { Render(c, rc) })
}

// PostRender runs the post-render hooks over the subgraph of n.
func PostRender(n Node) {
	walkAll(n, func(c Node) bool {
		if p, ok := c.(PostRenderer); ok {
			p.PostRenderNode()
		}
		return true
	})
}

// PreUpdate runs lazy initialization and clears the per-frame update marks
// over the subgraph of n.
func PreUpdate(n Node) {
	walkAll(n, func(c Node) bool {
		lazyInit(c)
		c.AsBase().updated = false
		return true
	})
}

// Update advances every enabled node reachable over followed edges once.
// Nodes reached again through another parent in the same frame are skipped
// until the next PreUpdate.
func Update(n Node, dt float32) {
	if n == nil {
		return
	}
	b := n.AsBase()
	if !active(b) || b.updated {
		return
	}
	b.updated = true
	if u, ok := n.(Updater); ok {
		u.UpdateNode(dt)
	}
	eachFollowed(n, func(c Node) { Update(c, dt) })
}

// Settle flushes pending delayed control signals and delivers armed stop
// signals everywhere in the subgraph of n.
func Settle(n Node) {
	walkAll(n, func(c Node) bool {
		if s, ok := c.(Settler); ok {
			s.SettleNode()
		}
		return true
	})
}

// Deliver hands signals armed during the last update to the control nodes
// listening for them. Delayed signals keep counting down.
func Deliver(n Node) {
	walkAll(n, func(c Node) bool {
		if d, ok := c.(Deliverer); ok {
			d.DeliverNode()
		}
		return true
	})
}

// Hit is one pick result.
type Hit struct {
	Node     Node
	Distance float32
	Point    math.Vec3
	// Bounds is the world box around the node's geometry on the hit path.
	Bounds math.Box
}

// Pick intersects a world-space ray with the bounds of every visible
// drawable node under n and returns the hits nearest first.
func Pick(n Node, ray math.Ray) []Hit {
	var hits []Hit
	pick(n, ray, math.Identity(), &hits)
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func pick(n Node, ray math.Ray, m math.Mat4, hits *[]Hit) {
	b := n.AsBase()
	if !active(b) || b.hidden {
		return
	}
	if t, ok := n.(Transformer); ok {
		m = m.Mul(t.Matrix())
	}
	if d, ok := n.(Drawable); ok {
		local := ray.Transform(m.Inverse())
		best, found := float32(0), false
		box := math.EmptyBox()
		for _, g := range d.Geometries() {
			box = box.Union(g.Bounds())
			if t, hit := local.IntersectBox(g.Bounds()); hit && (!found || t < best) {
				best, found = t, true
			}
		}
		if found {
			*hits = append(*hits, Hit{Node: n, Distance: best, Point: ray.At(best), Bounds: box.Transform(m)})
		}
	}
	eachFollowed(n, func(c Node) { pick(c, ray, m, hits) })
}
