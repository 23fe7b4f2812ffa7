package scenegraph

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/logger"
)

// Optimizer hooks.
type (
	// Convertible kinds can be replaced by an equivalent, simpler kind.
	// Convert returns nil when no conversion applies. The replacement
	// receives the original's children.
	Convertible interface {
		Convert() Node
	}

	// Folder kinds can bake their effect into their children so the node
	// itself can be dropped. Fold must leave everything untouched and
	// return false when that is impossible.
	Folder interface {
		Fold() bool
	}
)

// Stats counts the rewrites of one optimizer run.
type Stats struct {
	Converted int
	Inlined   int
	Swapped   int
	Merged    int
}

// Total returns the number of rewrites.
func (s Stats) Total() int {
	return s.Converted + s.Inlined + s.Swapped + s.Merged
}

type optimizer struct {
	onPath map[*Base]bool
	done   map[*Base]bool
	stats  Stats
	log    *zap.Logger
}

// OptimizeAll rewrites the subgraph of root until no rule applies. Shared
// and named nodes keep their identity and parents, selection children keep
// their order, and rendering is unchanged. Running it again on its own
// output changes nothing.
func OptimizeAll(root Node) Stats {
	o := &optimizer{
		onPath: make(map[*Base]bool),
		done:   make(map[*Base]bool),
		log:    logger.Named("optimizer"),
	}
	if root != nil {
		o.optimize(root)
	}
	if o.stats.Total() > 0 {
		o.log.Debug("optimized subgraph",
			zap.String("root", root.Kind()),
			zap.Int("converted", o.stats.Converted),
			zap.Int("inlined", o.stats.Inlined),
			zap.Int("swapped", o.stats.Swapped),
			zap.Int("merged", o.stats.Merged))
	}
	return o.stats
}

// Optimize rewrites the children of n once, without descending further,
// and reports whether anything changed.
func Optimize(n Node) bool {
	o := &optimizer{log: logger.Named("optimizer")}
	return o.step(n)
}

func (o *optimizer) optimize(n Node) {
	b := n.AsBase()
	if o.onPath[b] || b.freed {
		return
	}
	if b.Shared() && o.done[b] {
		return
	}
	o.onPath[b] = true
	defer delete(o.onPath, b)

	for {
		eachFollowed(n, o.optimize)
		if !o.step(n) {
			break
		}
	}
	o.done[b] = true
}

// step applies convert, inline, swap and merge to the direct children of
// n.
func (o *optimizer) step(n Node) bool {
	changed := o.convert(n)
	if _, sel := n.(Selector); !sel {
		changed = o.inline(n) || changed
	}
	changed = o.swap(n) || changed
	if _, sel := n.(Selector); !sel {
		changed = o.merge(n) || changed
	}
	return changed
}

func (o *optimizer) convert(n Node) bool {
	b := n.AsBase()
	changed := false
	for i := 0; i < len(b.children); i++ {
		c := b.children[i]
		if !n.Follow(i) || !plain(c) {
			continue
		}
		cv, ok := c.(Convertible)
		if !ok {
			continue
		}
		nc := cv.Convert()
		if nc == nil {
			continue
		}
		nc.AsBase().Link(c)
		o.log.Debug("convert", zap.String("from", c.Kind()), zap.String("to", nc.Kind()))
		b.Replace(nc, i)
		o.stats.Converted++
		changed = true
	}
	return changed
}

func (o *optimizer) inline(n Node) bool {
	b := n.AsBase()
	changed := false
	for i := 0; i < len(b.children); i++ {
		c := b.children[i]
		if !n.Follow(i) || !plain(c) {
			continue
		}
		f, ok := c.(Folder)
		if !ok || !f.Fold() {
			continue
		}
		cb := c.AsBase()
		kids := cb.children
		cb.children = nil
		rest := append(append([]Node{}, kids...), b.children[i+1:]...)
		b.children = append(b.children[:i], rest...)
		o.log.Debug("inline", zap.String("kind", c.Kind()), zap.Int("children", len(kids)))
		drop(c)
		i += len(kids) - 1
		o.stats.Inlined++
		changed = true
	}
	return changed
}

// swap moves a commuting state node above the transform that is its only
// parent, so state nodes gather near the root.
func (o *optimizer) swap(n Node) bool {
	b := n.AsBase()
	changed := false
	for i, c := range b.children {
		if !n.Follow(i) || !plain(c) {
			continue
		}
		if _, ok := c.(Transformer); !ok {
			continue
		}
		cb := c.AsBase()
		if len(cb.children) != 1 || !c.Follow(0) {
			continue
		}
		g := cb.children[0]
		s, ok := g.(Stateful)
		if !ok || !s.Commutes() || !plain(g) {
			continue
		}
		gb := g.AsBase()
		cb.children = gb.children
		gb.children = []Node{c}
		b.children[i] = g
		o.log.Debug("swap", zap.String("state", g.Kind()), zap.String("transform", c.Kind()))
		o.stats.Swapped++
		changed = true
	}
	return changed
}

func mergeable(n Node) bool {
	d, ok := n.(ownedDrawable)
	return ok && plain(n) && d.Managed() && n.AsBase().NumChildren() == 0
}

// merge combines every run of consecutive mergeable drawables into one
// managed container.
func (o *optimizer) merge(n Node) bool {
	b := n.AsBase()
	changed := false
	for i := 0; i < len(b.children); i++ {
		j := i
		for j < len(b.children) && n.Follow(j) && mergeable(b.children[j]) {
			j++
		}
		if j-i < 2 {
			continue
		}
		run := append([]Node{}, b.children[i:j]...)
		box := NewManagedContainer("")
		for _, c := range run {
			for _, g := range c.(ownedDrawable).detach() {
				box.AddGeometry(g)
			}
		}
		box.refs = 1
		rest := append([]Node{box}, b.children[j:]...)
		b.children = append(b.children[:i], rest...)
		for _, c := range run {
			drop(c)
		}
		o.log.Debug("merge", zap.Int("leaves", len(run)), zap.Int("buffers", len(box.geoms)))
		o.stats.Merged++
		changed = true
	}
	return changed
}
