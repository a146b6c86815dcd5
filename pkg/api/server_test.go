package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apimocks "github.com/goran-ethernal/BlockIndexor/internal/api/mocks"
	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *config.APIConfig
		validate func(t *testing.T, server *Server)
	}{
		{
			name: "create server with basic config",
			config: &config.APIConfig{
				Enabled:       true,
				ListenAddress: "localhost:8080",
				ReadTimeout:   common.Duration{Duration: 5 * time.Second},
				WriteTimeout:  common.Duration{Duration: 10 * time.Second},
				IdleTimeout:   common.Duration{Duration: 60 * time.Second},
			},
			validate: func(t *testing.T, server *Server) {
				t.Helper()

				require.NotNil(t, server.registry)
				require.NotNil(t, server.handler)
				require.Equal(t, "localhost:8080", server.server.Addr)
				require.Equal(t, 5*time.Second, server.server.ReadTimeout)
				require.Equal(t, 10*time.Second, server.server.WriteTimeout)
				require.Equal(t, 60*time.Second, server.server.IdleTimeout)
			},
		},
		{
			name: "create server with disabled state",
			config: &config.APIConfig{
				Enabled:       false,
				ListenAddress: ":8080",
			},
			validate: func(t *testing.T, server *Server) {
				t.Helper()

				require.False(t, server.config.Enabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewServer(tt.config, apimocks.NewIndexerRegistry(t), logger.NewNopLogger())
			tt.validate(t, server)
		})
	}
}

func TestServer_Start_Disabled(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{Enabled: false, ListenAddress: ":8080"}
	server := NewServer(cfg, apimocks.NewIndexerRegistry(t), logger.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		done <- server.Start(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start() did not return when server is disabled")
	}
}

func TestServer_Start_InvalidAddress(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{Enabled: true, ListenAddress: "not-an-address"}
	server := NewServer(cfg, apimocks.NewIndexerRegistry(t), logger.NewNopLogger())

	require.ErrorContains(t, server.Start(context.Background()), "failed to listen")
}

func TestServer_Start_GracefulShutdown(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{
		Enabled:       true,
		ListenAddress: "localhost:0",
		ReadTimeout:   common.Duration{Duration: 5 * time.Second},
		WriteTimeout:  common.Duration{Duration: 5 * time.Second},
		IdleTimeout:   common.Duration{Duration: 60 * time.Second},
	}

	server := NewServer(cfg, apimocks.NewIndexerRegistry(t), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx)
	}()

	// give the server time to start
	time.Sleep(100 * time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownCtxTimeout + 5*time.Second):
		t.Fatal("Server did not shutdown gracefully within timeout")
	}
}

func TestServer_Middleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		corsConfig     config.CORSConfig
		expectedOrigin string
	}{
		{
			name: "CORS middleware applied when enabled",
			corsConfig: config.CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"http://localhost:3000"},
			},
			expectedOrigin: "http://localhost:3000",
		},
		{
			name:           "CORS middleware not applied when disabled",
			corsConfig:     config.CORSConfig{Enabled: false},
			expectedOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := apimocks.NewIndexerRegistry(t)
			registry.EXPECT().ListAll().Return([]indexer.Synced{})

			server := NewServer(&config.APIConfig{
				Enabled:       true,
				ListenAddress: ":8080",
				CORS:          tt.corsConfig,
			}, registry, logger.NewNopLogger())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	server := NewServer(&config.APIConfig{Enabled: true, ListenAddress: ":8080"},
		apimocks.NewIndexerRegistry(t), logger.NewNopLogger())

	t.Run("swagger document", func(t *testing.T) {
		t.Parallel()

		w := serve(t, server.Handler(), "/swagger/doc.json")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "/indexers/{name}/blocks/by-timestamp")
		require.Contains(t, w.Body.String(), "BlockIndexor API")
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()

		w := serve(t, server.Handler(), "/api/v1/unknown")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/indexers", nil)
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
