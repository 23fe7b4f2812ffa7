package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/logger"
	"github.com/Faultbox/scenery/pkg/scenegraph/export"
)

var contentTypes = map[export.Format]string{
	export.FormatYAML:   "application/yaml",
	export.FormatDOT:    "text/vnd.graphviz",
	export.FormatStream: "text/plain; charset=utf-8",
}

// Server is the HTTP inspector.
type Server struct {
	addr    string
	snap    *Snapshotter
	metrics *Metrics
	router  *mux.Router
}

// NewServer wires the inspector routes.
func NewServer(addr string, snap *Snapshotter, metrics *Metrics) *Server {
	s := &Server{
		addr:    addr,
		snap:    snap,
		metrics: metrics,
		router:  mux.NewRouter(),
	}
	s.InitRoutes(s.router)
	return s
}

// InitRoutes mounts every inspector route on r.
func (s *Server) InitRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.HandleFunc("/scene", s.info).Methods("GET")
	r.HandleFunc("/scene/{format}", s.export).Methods("GET")
	r.Handle("/loglevel", logger.Level()).Methods("GET", "PUT")
	s.metrics.InitRoutes(r)
	r.Use(s.logRequest)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// the given timeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdown time.Duration) error {
	log := logger.Named("inspect")
	server := http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("starting inspector", zap.String("bindAddr", s.addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdown)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("failed to shut down inspector", zap.Error(err))
		return err
	}
	log.Info("inspector stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	info, ok := s.snap.Info()
	if !ok {
		withError(w, http.StatusServiceUnavailable, errors.New("no snapshot captured yet"))
		return
	}
	withJSON(w, http.StatusOK, info)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		withError(w, http.StatusNotFound, err)
		return
	}
	data, ok := s.snap.Export(f)
	if !ok {
		withError(w, http.StatusServiceUnavailable, errors.New("no snapshot captured yet"))
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func withJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(payload)
}

func withError(w http.ResponseWriter, status int, err error) {
	withJSON(w, status, map[string]string{"error": err.Error()})
}

type responseWrapper struct {
	http.ResponseWriter
	status int
}

func (w *responseWrapper) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(wrapper.status)).Inc()
		logger.Named("inspect").Debug("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Int("status", wrapper.status))
	})
}
