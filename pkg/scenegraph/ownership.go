package scenegraph

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/logger"
	"github.com/Faultbox/scenery/pkg/render"
)

// Disposer is implemented by kinds holding resources beyond their children.
// OnRelease runs once while the node is destroyed.
type Disposer interface {
	OnRelease()
}

// Add appends child, takes a reference on it and returns it. It returns nil
// and leaves b untouched when child is nil or already released.
func (b *Base) Add(child Node) Node {
	return b.Insert(len(b.children), child)
}

// Insert places child at index i (clamped to the valid range) and takes a
// reference on it.
func (b *Base) Insert(i int, child Node) Node {
	if child == nil || child.AsBase().freed {
		return nil
	}
	i = max(0, min(i, len(b.children)))
	b.children = append(b.children, nil)
	copy(b.children[i+1:], b.children[i:])
	b.children[i] = child
	child.AsBase().refs++
	return child
}

// Attach adds child to parent and returns it with its concrete type, which
// keeps scene construction code free of type assertions.
func Attach[T Node](parent Node, child T) T {
	if parent.AsBase().Add(child) == nil {
		var zero T
		return zero
	}
	return child
}

// Remove detaches child i and destroys it if that was its last reference.
func (b *Base) Remove(i int) {
	if i < 0 || i >= len(b.children) {
		return
	}
	c := b.children[i]
	b.children = append(b.children[:i], b.children[i+1:]...)
	drop(c)
}

// Replace puts node at index i. Nothing happens when node already sits
// there; otherwise the previous child loses its reference.
func (b *Base) Replace(node Node, i int) {
	if node == nil || node.AsBase().freed || i < 0 || i >= len(b.children) {
		return
	}
	old := b.children[i]
	if old == node {
		return
	}
	node.AsBase().refs++
	b.children[i] = node
	drop(old)
}

// Take detaches child i without destroying it and hands its reference to
// the caller.
func (b *Base) Take(i int) Node {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	c := b.children[i]
	b.children = append(b.children[:i], b.children[i+1:]...)
	c.AsBase().refs--
	return c
}

// Link adds every child of other to b as well.
func (b *Base) Link(other Node) {
	if other == nil {
		return
	}
	for _, c := range other.AsBase().Children() {
		b.Add(c)
	}
}

// Unlink drops every child of b.
func (b *Base) Unlink() {
	kids := b.children
	b.children = nil
	for _, c := range kids {
		drop(c)
	}
}

// Release destroys a root node and every descendant no longer referenced
// from elsewhere. Releasing a node that still has parents is an invariant
// violation and leaves the graph untouched.
func Release(n Node) error {
	if n == nil {
		return nil
	}
	b := n.AsBase()
	if b.freed || b.freeing {
		return nil
	}
	if b.refs != 0 {
		return &InvariantError{
			Op:     "release",
			Node:   n,
			Reason: fmt.Sprintf("still referenced by %d parent edges", b.refs),
		}
	}
	destroy(n)
	return nil
}

func destroy(n Node) {
	b := n.AsBase()
	b.freeing = true
	kids := b.children
	b.children = nil
	for _, c := range kids {
		drop(c)
	}
	if d, ok := n.(Disposer); ok {
		d.OnRelease()
	}
	b.freed = true
}

// drop removes one parent edge from n and destroys it at zero, unless it is
// already being destroyed further up the same cascade.
func drop(n Node) {
	b := n.AsBase()
	b.refs--
	if b.refs < 0 {
		logger.Named("scenegraph").Error("negative reference count",
			zap.String("kind", n.Kind()), zap.String("id", b.ID()), zap.Int("refs", b.refs))
		b.refs = 0
	}
	if b.refs == 0 && !b.freeing {
		destroy(n)
	}
}

// releaseHandle frees an owned geometry or body.
func releaseHandle(h any) {
	if r, ok := h.(render.Releaser); ok {
		r.Release()
	}
}
