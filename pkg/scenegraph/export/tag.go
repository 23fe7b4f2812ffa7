package export

import (
	"fmt"

	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

// Tags is the result of the tag pass: one id per reachable node and the
// number of edges leading to it within the exported subgraph.
type Tags struct {
	ids    map[*sg.Base]string
	visits map[*sg.Base]int
	order  []sg.Node
	alias  []*sg.Base
}

// Tag walks every edge reachable from root in depth-first order. Named or
// aliased nodes keep that id, made unique with a numeric suffix when two
// distinct nodes share it. Other nodes receive a temporary alias n1, n2...
func Tag(root sg.Node) *Tags {
	t := &Tags{
		ids:    make(map[*sg.Base]string),
		visits: make(map[*sg.Base]int),
	}
	taken := make(map[string]bool)
	t.scan(root, func(n sg.Node) {
		if name := n.AsBase().ID(); name != "" {
			taken[name] = true
		}
	})

	used := make(map[string]bool)
	next := 0
	for _, n := range t.order {
		b := n.AsBase()
		name := b.ID()
		var id string
		switch {
		case name != "" && !used[name]:
			id = name
		case name != "":
			for k := 2; ; k++ {
				id = fmt.Sprintf("%s_%d", name, k)
				if !used[id] && !taken[id] {
					break
				}
			}
		default:
			for {
				next++
				id = fmt.Sprintf("n%d", next)
				if !used[id] && !taken[id] {
					break
				}
			}
			b.SetAlias(id)
			t.alias = append(t.alias, b)
		}
		used[id] = true
		t.ids[b] = id
	}
	return t
}

func (t *Tags) scan(root sg.Node, first func(sg.Node)) {
	var visit func(n sg.Node)
	visit = func(n sg.Node) {
		b := n.AsBase()
		t.visits[b]++
		if t.visits[b] > 1 {
			return
		}
		t.order = append(t.order, n)
		first(n)
		for _, e := range sg.Edges(n) {
			visit(e.Child)
		}
	}
	visit(root)
}

// ID returns the id of n, or "" when n was not reached by the tag pass.
func (t *Tags) ID(n sg.Node) string { return t.ids[n.AsBase()] }

// Visits returns how many edges reach n; the root counts one.
func (t *Tags) Visits(n sg.Node) int { return t.visits[n.AsBase()] }

// Shared reports whether n is reached more than once.
func (t *Tags) Shared(n sg.Node) bool { return t.visits[n.AsBase()] > 1 }

// Nodes returns the tagged nodes in first-visit order.
func (t *Tags) Nodes() []sg.Node { return t.order }

// Untag clears the generated aliases.
func (t *Tags) Untag() {
	for _, b := range t.alias {
		b.SetAlias("")
	}
	t.alias = nil
}
