// Package scenegraph implements a retained-mode scene graph: a
// shared-ownership DAG of renderable, controllable and animated nodes with a
// per-frame traversal protocol, a control-signal graph, and an optimizer
// that rewrites unshared subgraphs.
//
// Every node kind embeds Base and is bound to it with InitNode, which gives
// Base a reference to the outer value so default behavior can dispatch to
// the kind's overrides. Behavior beyond the three methods of Node is opted
// into through small capability interfaces (Renderer, Updater, Transformer,
// Drawable, Stateful, Controllable, Steerable, ...).
//
// The graph is single-threaded: traversals and mutations must run on the
// frame loop's goroutine, and mutations only between traversals.
package scenegraph

// Node is implemented by every scene graph element.
type Node interface {
	// AsBase returns the embedded common state.
	AsBase() *Base
	// Kind returns a short lowercase name of the node kind.
	Kind() string
	// Follow reports whether child i takes part in traversals.
	Follow(i int) bool
}

// Base holds the state shared by every node kind.
type Base struct {
	// Name is an optional user id. Named nodes are never rewritten by the
	// optimizer and keep their name in exports.
	Name string

	alias    string
	enabled  bool
	hidden   bool
	mode     ControlMode
	children []Node
	refs     int
	inited   bool
	updated  bool
	freeing  bool
	freed    bool

	this Node
}

// InitNode binds b to the node embedding it and sets the defaults: enabled,
// visible, ModeEnable. Kinds call it from their constructors; a Base that
// was never bound behaves as a plain group.
func (b *Base) InitNode(this Node, name string) {
	b.this = this
	b.Name = name
	b.enabled = true
	b.mode = ModeEnable
}

// AsBase implements Node.
func (b *Base) AsBase() *Base { return b }

// Kind implements Node.
func (b *Base) Kind() string { return "node" }

// Follow implements Node; every child is followed by default.
func (b *Base) Follow(int) bool { return true }

// This returns the node b is embedded in.
func (b *Base) This() Node {
	if b.this == nil {
		return b
	}
	return b.this
}

// Alias returns the id assigned by the last export tag pass.
func (b *Base) Alias() string { return b.alias }

// SetAlias is used by the export tag pass.
func (b *Base) SetAlias(a string) { b.alias = a }

// ID returns the user name if set, otherwise the export alias.
func (b *Base) ID() string {
	if b.Name != "" {
		return b.Name
	}
	return b.alias
}

// NumChildren returns the number of children.
func (b *Base) NumChildren() int { return len(b.children) }

// Child returns child i, or nil when i is out of range.
func (b *Base) Child(i int) Node {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

// Children returns a copy of the child list.
func (b *Base) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// IndexOf returns the first index of child, or -1.
func (b *Base) IndexOf(child Node) int {
	for i, c := range b.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Refs returns the number of parent edges pointing at the node.
func (b *Base) Refs() int { return b.refs }

// Shared reports whether more than one parent edge points at the node.
func (b *Base) Shared() bool { return b.refs > 1 }

// Freed reports whether the node has been destroyed.
func (b *Base) Freed() bool { return b.freed }

// Group is a plain node that only holds children.
type Group struct {
	Base
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	g := &Group{}
	g.InitNode(g, name)
	return g
}

// Kind implements Node.
func (g *Group) Kind() string { return "group" }

// Find returns the first node named name in the subgraph of n, searching
// depth first over all children. It returns nil when nothing matches.
func Find(n Node, name string) Node {
	var found Node
	walkAll(n, func(c Node) bool {
		if c.AsBase().Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
