package export

import (
	"io"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

type dotNode struct {
	id    int64
	name  string
	shape string
	label string
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return n.name }
func (n dotNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "shape", Value: n.shape},
		{Key: "label", Value: n.label},
	}
}

// dotLine is one parent to child edge. A child added twice under the same
// parent gets two lines, so the drawing shows every counted reference.
type dotLine struct {
	from, to graph.Node
	id       int64
	attrs    []encoding.Attribute
}

func (l dotLine) From() graph.Node { return l.from }
func (l dotLine) To() graph.Node   { return l.to }
func (l dotLine) ID() int64        { return l.id }
func (l dotLine) ReversedLine() graph.Line {
	return dotLine{from: l.to, to: l.from, id: l.id, attrs: l.attrs}
}
func (l dotLine) Attributes() []encoding.Attribute { return l.attrs }

type dotGraph struct {
	*multi.DirectedGraph
	lines int64
}

func (g *dotGraph) link(from, to graph.Node, attrs []encoding.Attribute) {
	g.SetLine(dotLine{from: from, to: to, id: g.lines, attrs: attrs})
	g.lines++
}

func (*dotGraph) DOTAttributers() (g, n, e encoding.Attributer) {
	g = &encoding.Attributes{{Key: "rankdir", Value: "TB"}}
	n = &encoding.Attributes{{Key: "fontname", Value: "Helvetica"}}
	e = &encoding.Attributes{}
	return g, n, e
}

func writeDOT(w io.Writer, root sg.Node, tags *Tags, name string) error {
	g := &dotGraph{DirectedGraph: multi.NewDirectedGraph()}
	nodes := make(map[*sg.Base]dotNode)
	for i, n := range tags.Nodes() {
		id := tags.ID(n)
		dn := dotNode{
			id:    int64(i),
			name:  id,
			shape: shapeOf(n),
			label: n.Kind() + "\n" + id,
		}
		nodes[n.AsBase()] = dn
		g.AddNode(dn)
	}
	for _, n := range tags.Nodes() {
		from := nodes[n.AsBase()]
		for _, e := range sg.Edges(n) {
			to, ok := nodes[e.Child.AsBase()]
			if !ok || to.id == from.id {
				continue
			}
			g.link(from, to, edgeAttrs(e))
		}
		if c, ok := n.(*sg.Control); ok {
			if src, ok := c.Source().(sg.Node); ok {
				if s, ok := nodes[src.AsBase()]; ok && s.id != from.id {
					g.link(s, from, []encoding.Attribute{
						{Key: "style", Value: "dashed"},
						{Key: "arrowhead", Value: "empty"},
						{Key: "label", Value: "signal"},
					})
				}
			}
		}
	}
	b, err := dot.MarshalMulti(g, name, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func edgeAttrs(e sg.Edge) []encoding.Attribute {
	switch {
	case e.Link == sg.LinkControl:
		return []encoding.Attribute{{Key: "style", Value: "dashed"}}
	case e.Link == sg.LinkSubRoot:
		return []encoding.Attribute{{Key: "style", Value: "bold"}, {Key: "label", Value: "sub"}}
	case !e.Followed:
		return []encoding.Attribute{{Key: "style", Value: "dotted"}}
	}
	return nil
}

func shapeOf(n sg.Node) string {
	switch n.(type) {
	case sg.ControlLinker:
		return "hexagon"
	case sg.Selector:
		return "diamond"
	case sg.SubRooter:
		return "box3d"
	case sg.Stateful:
		return "parallelogram"
	case sg.Transformer:
		return "box"
	case sg.Drawable:
		return "ellipse"
	}
	return "oval"
}
