package inspect

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FrameStats is what the viewer reports after each frame.
type FrameStats struct {
	Duration time.Duration
	Batches  int
	Vertices int
	States   int
}

// Metrics collects viewer metrics in its own registry.
type Metrics struct {
	registry *prometheus.Registry

	frames    prometheus.Counter
	frameTime prometheus.Histogram
	batches   prometheus.Gauge
	vertices  prometheus.Gauge
	states    prometheus.Gauge
	nodes     prometheus.Gauge
	snapshots prometheus.Counter
	requests  *prometheus.CounterVec
}

// NewMetrics creates and registers the viewer metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgview_frames_total",
			Help: "Number of frames rendered",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sgview_frame_seconds",
			Help:    "Time spent updating and rendering one frame",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 8),
		}),
		batches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sgview_frame_batches",
			Help: "Primitive batches sent in the last frame",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sgview_frame_vertices",
			Help: "Vertices sent in the last frame",
		}),
		states: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sgview_frame_state_changes",
			Help: "Render state changes in the last frame",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sgview_scene_nodes",
			Help: "Distinct nodes reachable from the scene root at the last snapshot",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgview_snapshots_total",
			Help: "Number of scene snapshots captured for the inspector",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgview_inspect_requests_total",
			Help: "Inspector requests by route and status",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(
		m.frames, m.frameTime, m.batches, m.vertices, m.states,
		m.nodes, m.snapshots, m.requests,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveFrame records one rendered frame.
func (m *Metrics) ObserveFrame(s FrameStats) {
	m.frames.Inc()
	m.frameTime.Observe(s.Duration.Seconds())
	m.batches.Set(float64(s.Batches))
	m.vertices.Set(float64(s.Vertices))
	m.states.Set(float64(s.States))
}

// ObserveSnapshot records a captured snapshot.
func (m *Metrics) ObserveSnapshot(info Info) {
	m.snapshots.Inc()
	m.nodes.Set(float64(info.Nodes))
}

// InitRoutes mounts the metrics endpoint.
func (m *Metrics) InitRoutes(r *mux.Router) {
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})).Methods("GET")
}
