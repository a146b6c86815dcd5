package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	componentHealthMetric = "blockindexor_component_health"
	systemMetricsInterval = 15 * time.Second
)

// Server exposes the Prometheus registry and a health probe derived from the
// component health gauge.
type Server struct {
	config   *config.MetricsConfig
	gatherer prometheus.Gatherer
	log      *logger.Logger

	server   *http.Server
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewServer creates a metrics server over the default Prometheus registry.
func NewServer(cfg *config.MetricsConfig, log *logger.Logger) *Server {
	return &Server{
		config:   cfg,
		gatherer: prometheus.DefaultGatherer,
		log:      log,
	}
}

// Handler serves the metrics path and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.config.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// handleHealth answers 503 while any component reports itself unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	unhealthy, err := unhealthyComponents(s.gatherer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if len(unhealthy) > 0 {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"healthy": len(unhealthy) == 0, "unhealthy": unhealthy})
}

func unhealthyComponents(g prometheus.Gatherer) ([]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	unhealthy := []string{}
	for _, family := range families {
		if family.GetName() != componentHealthMetric {
			continue
		}
		for _, m := range family.GetMetric() {
			if m.GetGauge().GetValue() != 0 {
				continue
			}
			for _, label := range m.GetLabel() {
				if label.GetName() == "component" {
					unhealthy = append(unhealthy, label.GetValue())
				}
			}
		}
	}
	slices.Sort(unhealthy)

	return unhealthy, nil
}

// Start binds the listen address and serves in the background. Bind errors are
// returned directly.
func (s *Server) Start(ctx context.Context) error {
	if s.config == nil || !s.config.Enabled {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, s.cancel = context.WithCancel(ctx)

	UpdateSystemMetrics()
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.refreshSystemMetrics(ctx)
	}()
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("metrics server error: %v", err)
			ComponentHealthSet("metrics", false)
		}
	}()

	s.log.Infof("Metrics server listening on %s%s", ln.Addr(), s.config.Path)
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and waits for its goroutines.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.cancel()
	err := s.server.Shutdown(ctx)
	s.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}

	return nil
}

func (s *Server) refreshSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			UpdateSystemMetrics()
		case <-ctx.Done():
			return
		}
	}
}
