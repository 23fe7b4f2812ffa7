package export

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

func writeYAML(w io.Writer, root sg.Node, tags *Tags) error {
	y := &yamlWriter{tags: tags, emitted: make(map[*sg.Base]bool)}
	doc, err := y.node(root)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

type yamlWriter struct {
	tags    *Tags
	emitted map[*sg.Base]bool
	anchors map[*sg.Base]*yaml.Node
}

// node builds the mapping for n. A shared node is written in full on its
// first visit and as an alias afterwards.
func (y *yamlWriter) node(n sg.Node) (*yaml.Node, error) {
	b := n.AsBase()
	id := y.tags.ID(n)
	if y.emitted[b] {
		return &yaml.Node{Kind: yaml.AliasNode, Value: anchorName(id), Alias: y.anchors[b]}, nil
	}
	y.emitted[b] = true

	m := &yaml.Node{Kind: yaml.MappingNode}
	if y.tags.Shared(n) {
		m.Anchor = anchorName(id)
		if y.anchors == nil {
			y.anchors = make(map[*sg.Base]*yaml.Node)
		}
		y.anchors[b] = m
	}
	pair(m, "kind", str(n.Kind()))
	pair(m, "id", str(id))

	if attrs := sg.Attrs(n); len(attrs) > 0 {
		am := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range attrs {
			v := &yaml.Node{}
			if err := v.Encode(a.Value); err != nil {
				return nil, err
			}
			flow(v)
			pair(am, a.Key, v)
		}
		pair(m, "attrs", am)
	}

	var children, targets, sub *yaml.Node
	for _, e := range sg.Edges(n) {
		c, err := y.node(e.Child)
		if err != nil {
			return nil, err
		}
		switch e.Link {
		case sg.LinkSubRoot:
			sub = c
		case sg.LinkControl:
			if targets == nil {
				targets = &yaml.Node{Kind: yaml.SequenceNode}
			}
			targets.Content = append(targets.Content, c)
		default:
			if children == nil {
				children = &yaml.Node{Kind: yaml.SequenceNode}
			}
			children.Content = append(children.Content, c)
		}
	}
	if children != nil {
		pair(m, "children", children)
	}
	if targets != nil {
		pair(m, "targets", targets)
	}
	if sub != nil {
		pair(m, "subroot", sub)
	}
	return m, nil
}

func pair(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, str(key), v)
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// flow switches sequences of scalars to flow style so vectors and
// matrices stay on one line.
func flow(v *yaml.Node) {
	switch v.Kind {
	case yaml.SequenceNode:
		v.Style = yaml.FlowStyle
	case yaml.MappingNode:
		for i := 1; i < len(v.Content); i += 2 {
			flow(v.Content[i])
		}
	}
}

func anchorName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, id)
}
