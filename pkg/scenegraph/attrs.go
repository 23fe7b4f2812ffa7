package scenegraph

// Attr is one exported property of a node.
type Attr struct {
	Key   string
	Value any
}

// Attributer is implemented by kinds with properties worth exporting.
type Attributer interface {
	ExportAttrs() []Attr
}

// Attrs returns the common flags of n that differ from their defaults,
// followed by its kind-specific properties.
func Attrs(n Node) []Attr {
	b := n.AsBase()
	var attrs []Attr
	if c, ok := n.(Controllable); ok && !c.Enabled() {
		attrs = append(attrs, Attr{"enabled", false})
	}
	if b.hidden {
		attrs = append(attrs, Attr{"hidden", true})
	}
	if b.mode != ModeEnable {
		attrs = append(attrs, Attr{"mode", b.mode.String()})
	}
	if a, ok := n.(Attributer); ok {
		attrs = append(attrs, a.ExportAttrs()...)
	}
	return attrs
}
