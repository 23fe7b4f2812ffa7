// Package inspect serves the running scene over HTTP: the three export
// formats of the latest snapshot, a JSON summary and Prometheus metrics.
//
// The scene graph is single-threaded, so handlers never touch it. The
// viewer captures a Snapshot between frames and handlers read the copy.
package inspect

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/Faultbox/scenery/pkg/math"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
	"github.com/Faultbox/scenery/pkg/scenegraph/export"
)

// Info summarizes the scene at capture time.
type Info struct {
	Frame      uint64    `json:"frame"`
	Time       float64   `json:"time"`
	Nodes      int       `json:"nodes"`
	Paths      int       `json:"paths"`
	Primitives int       `json:"primitives"`
	Vertices   int       `json:"vertices"`
	Taken      time.Time `json:"taken"`
}

// Snapshotter holds the latest exports of the scene.
type Snapshotter struct {
	mu      sync.RWMutex
	info    Info
	exports map[export.Format][]byte
	opts    export.Options
}

// NewSnapshotter returns an empty snapshotter. opts is passed to every
// export it captures.
func NewSnapshotter(opts export.Options) *Snapshotter {
	return &Snapshotter{opts: opts}
}

// Capture exports root in every format and replaces the stored snapshot.
// eye is the viewer position the stream selects levels of detail from. It
// must run on the thread that owns the graph.
func (s *Snapshotter) Capture(d *sg.Driver, eye math.Vec3) error {
	root := d.Root
	opts := s.opts
	opts.Eye = eye
	exports := make(map[export.Format][]byte, len(export.Formats))
	for _, f := range export.Formats {
		var buf bytes.Buffer
		if err := export.Write(&buf, root, f, opts); err != nil {
			return fmt.Errorf("capturing snapshot: %w", err)
		}
		exports[f] = buf.Bytes()
	}
	info := Info{
		Frame:      d.Frame(),
		Time:       d.Time(),
		Nodes:      sg.CountAllOnce(root),
		Paths:      sg.CountAll(root),
		Primitives: sg.CountPrimitives(root),
		Vertices:   sg.CountVertices(root),
		Taken:      time.Now(),
	}

	s.mu.Lock()
	s.info = info
	s.exports = exports
	s.mu.Unlock()
	return nil
}

// Export returns the stored export in format f.
func (s *Snapshotter) Export(f export.Format) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.exports[f]
	return b, ok
}

// Info returns the stored summary and whether a snapshot exists.
func (s *Snapshotter) Info() (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.exports != nil
}
