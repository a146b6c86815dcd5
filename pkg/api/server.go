package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	internalcommon "github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/api/docs"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
)

// Ensure docs are initialized
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config   *config.APIConfig
	registry IndexerRegistry
	handler  *Handler
	server   *http.Server
	log      *logger.Logger
}

// NewServer creates a new API server.
func NewServer(cfg *config.APIConfig, registry IndexerRegistry, log *logger.Logger) *Server {
	log = log.WithComponent(internalcommon.ComponentAPI)
	handler := NewHandler(registry, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/v1/indexers", handler.ListIndexers)

	// the literal segment takes precedence over {hash}
	mux.HandleFunc("GET /api/v1/indexers/{name}/blocks/by-timestamp", handler.GetBlocksByTimestamp)
	mux.HandleFunc("GET /api/v1/indexers/{name}/blocks/{hash}", handler.GetBlockByHash)

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	var h http.Handler = mux
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)

	if cfg.CORS.Enabled {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  cfg.IdleTimeout.Duration,
	}

	return &Server{
		config:   cfg,
		registry: registry,
		handler:  handler,
		server:   httpServer,
		log:      log,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.log.Infof("Starting API server on %s", listener.Addr())

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err, failed := <-serveErr:
		if failed {
			return fmt.Errorf("API server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
