// Package export writes a scene graph in three textual formats: a nested
// YAML dump, a Graphviz DOT digraph, and a flattened render command stream.
// All three share one tag pass that gives every reachable node a single
// stable id, so shared nodes are written once and referenced afterwards.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/scenery/pkg/math"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

// Format names an export format.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatDOT    Format = "dot"
	FormatStream Format = "stream"
)

// Formats lists the supported formats.
var Formats = []Format{FormatYAML, FormatDOT, FormatStream}

// ParseFormat maps a format name to its Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Ext returns the conventional file extension.
func (f Format) Ext() string {
	if f == FormatStream {
		return ".sgs"
	}
	return "." + string(f)
}

// Options tunes an export.
type Options struct {
	// Name is the graph name used by the DOT format.
	Name string
	// Finish completes in-flight transitions before exporting so the
	// written state is never mid-motion.
	Finish bool
	// Settle flushes delayed control signals before exporting. Periodic
	// captures of a running scene leave it off so delays keep counting.
	Settle bool
	// Eye is the viewer position used for LOD selection by the stream.
	Eye math.Vec3
}

// Write exports root in format f. It runs the pre-pass (lazy init with
// optional finish and settle), the tag pass, the format pass and the untag
// pass. Selection state chosen by the last render is left as it was.
func Write(w io.Writer, root sg.Node, f Format, opt Options) error {
	if root == nil {
		return fmt.Errorf("export %s: nil root", f)
	}
	sg.PreRender(root)
	if opt.Finish {
		sg.FinishAll(root)
	}
	if opt.Settle {
		sg.Settle(root)
	}

	tags := Tag(root)
	defer tags.Untag()

	var err error
	switch f {
	case FormatYAML:
		err = writeYAML(w, root, tags)
	case FormatDOT:
		name := opt.Name
		if name == "" {
			name = "scene"
		}
		err = writeDOT(w, root, tags, name)
	case FormatStream:
		err = writeStream(w, root, tags, opt.Eye)
	default:
		return fmt.Errorf("export: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	return nil
}
