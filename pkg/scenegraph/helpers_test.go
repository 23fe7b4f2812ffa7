package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/geom"
	"github.com/Faultbox/scenery/pkg/render"
)

func quadLeaf(name string) *Leaf {
	return NewManagedLeaf(name, geom.Quad())
}

func record(n Node) []render.Command {
	rec := render.NewRecorder()
	NewDriver(n).RenderTo(rec)
	return rec.Commands()
}

// edgeCounts counts parent to child edges per node over everything
// reachable from root.
func edgeCounts(root Node) map[Node]int {
	counts := map[Node]int{}
	walkAll(root, func(n Node) bool {
		for _, e := range Edges(n) {
			counts[e.Child]++
		}
		return true
	})
	return counts
}
