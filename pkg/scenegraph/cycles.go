package scenegraph

// CheckForCycles reports whether a cycle is reachable from n over followed
// edges. Inactive selection branches and control links are ignored.
func CheckForCycles(n Node) bool {
	return hasCycle(n, func(e Edge) bool { return e.Followed })
}

// CheckStructure reports whether a cycle is reachable from n over every
// structural edge, including inactive selection branches. Control links
// may loop and are ignored.
func CheckStructure(n Node) bool {
	return hasCycle(n, func(e Edge) bool { return e.Link != LinkControl })
}

func hasCycle(n Node, use func(Edge) bool) bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[*Base]int)
	var visit func(Node) bool
	visit = func(n Node) bool {
		b := n.AsBase()
		switch color[b] {
		case gray:
			return true
		case black:
			return false
		}
		color[b] = gray
		for _, e := range Edges(n) {
			if use(e) && visit(e.Child) {
				return true
			}
		}
		color[b] = black
		return false
	}
	return visit(n)
}
