package scenegraph

import (
	"github.com/Faultbox/scenery/pkg/math"
)

// Selector is implemented by kinds that follow one child chosen at run
// time. The optimizer never reorders their children.
type Selector interface {
	Active() int
}

// Switcher follows exactly one child, chosen explicitly.
type Switcher struct {
	Base
	active int
}

// NewSwitcher creates a switcher following child 0.
func NewSwitcher(name string) *Switcher {
	s := &Switcher{}
	s.InitNode(s, name)
	return s
}

func (s *Switcher) Kind() string { return "switch" }

// Follow implements Node.
func (s *Switcher) Follow(i int) bool { return i == s.active }

// Active returns the followed child index.
func (s *Switcher) Active() int { return s.active }

// Select follows child i. An index outside the child list follows nothing.
func (s *Switcher) Select(i int) { s.active = i }

// Next advances to the following child, wrapping around.
func (s *Switcher) Next() {
	if n := len(s.children); n > 0 {
		s.active = (s.active + 1) % n
	}
}

// Prev steps back to the preceding child, wrapping around.
func (s *Switcher) Prev() {
	if n := len(s.children); n > 0 {
		s.active = ((s.active-1)%n + n) % n
	}
}

// Steer implements Steerable by selecting the truncated index.
func (s *Switcher) Steer(v float32) { s.Select(int(v)) }

func (s *Switcher) ExportAttrs() []Attr { return []Attr{{"active", s.active}} }

// LOD follows the child whose range contains the eye distance. Ranges are
// ascending upper limits; child i is used below Ranges[i] and the child
// after the last range beyond it.
type LOD struct {
	Base
	Ranges []float32
	// Center is the reference point in the node's model space.
	Center math.Vec3

	active  int
	pending int
}

// NewLOD creates a level-of-detail node.
func NewLOD(name string, ranges ...float32) *LOD {
	l := &LOD{Ranges: ranges}
	l.InitNode(l, name)
	return l
}

func (l *LOD) Kind() string { return "lod" }

// Follow implements Node with the level chosen by the last render.
func (l *LOD) Follow(i int) bool { return i == l.active }

// Active returns the level chosen by the last completed frame.
func (l *LOD) Active() int { return l.active }

// Level returns the level for an eye distance.
func (l *LOD) Level(dist float32) int {
	for i, r := range l.Ranges {
		if dist < r {
			return i
		}
	}
	return len(l.Ranges)
}

// RenderNode picks the level from the distance between the eye and the
// transformed center and renders that child only.
func (l *LOD) RenderNode(rc *RenderContext) {
	center := rc.Matrix().TransformPoint(l.Center)
	lvl := l.Level(center.Distance(rc.Eye))
	l.pending = lvl
	if c := l.Child(lvl); c != nil {
		Render(c, rc)
	}
}

// PostRenderNode commits the level chosen during the frame.
func (l *LOD) PostRenderNode() { l.active = l.pending }

func (l *LOD) ExportAttrs() []Attr {
	return []Attr{{"ranges", l.Ranges}, {"active", l.active}}
}
