package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		allowedOrigins []string
		method         string
		origin         string
		expectedOrigin string
		expectedVary   bool
		expectedBody   string
	}{
		{
			name:           "wildcard echoes the request origin",
			allowedOrigins: []string{"*"},
			method:         http.MethodGet,
			origin:         "https://explorer.example",
			expectedOrigin: "https://explorer.example",
			expectedVary:   true,
			expectedBody:   "ok",
		},
		{
			name:           "wildcard without origin header",
			allowedOrigins: []string{"*"},
			method:         http.MethodGet,
			expectedOrigin: "*",
			expectedBody:   "ok",
		},
		{
			name:           "listed origin",
			allowedOrigins: []string{"https://a.example", "https://b.example"},
			method:         http.MethodGet,
			origin:         "https://b.example",
			expectedOrigin: "https://b.example",
			expectedVary:   true,
			expectedBody:   "ok",
		},
		{
			name:           "unlisted origin still reaches the handler",
			allowedOrigins: []string{"https://a.example"},
			method:         http.MethodGet,
			origin:         "https://evil.example",
			expectedBody:   "ok",
		},
		{
			name:           "no allowed origins",
			allowedOrigins: nil,
			method:         http.MethodGet,
			origin:         "https://a.example",
			expectedBody:   "ok",
		},
		{
			name:           "preflight is answered directly",
			allowedOrigins: []string{"https://a.example"},
			method:         http.MethodOptions,
			origin:         "https://a.example",
			expectedOrigin: "https://a.example",
			expectedVary:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/v1/indexers", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			CORSMiddleware(tt.allowedOrigins)(okHandler).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expectedBody, w.Body.String())
			require.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))

			if tt.expectedOrigin == "" {
				require.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
			} else {
				require.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
				require.Equal(t, corsMaxAge, w.Header().Get("Access-Control-Max-Age"))
			}

			if tt.expectedVary {
				require.Equal(t, "Origin", w.Header().Get("Vary"))
			} else {
				require.Empty(t, w.Header().Get("Vary"))
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("first status wins", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)

		require.Equal(t, http.StatusNotFound, rw.statusCode)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("write without header keeps 200", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

		n, err := rw.Write([]byte("body"))
		require.NoError(t, err)
		require.Equal(t, 4, n)

		// a late WriteHeader must not relabel an already started response
		rw.WriteHeader(http.StatusTeapot)
		require.Equal(t, http.StatusOK, rw.statusCode)
		require.Equal(t, "body", rec.Body.String())
	})
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	var seen int
	handler := LoggingMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen++
		respondError(w, http.StatusNotFound, "missing")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/indexers/x", nil))

	require.Equal(t, 1, seen)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "missing")
}

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantBody  string
		panicking bool
	}{
		{
			name:     "passes through",
			handler:  okHandler,
			wantCode: http.StatusOK,
			wantBody: "ok",
		},
		{
			name:      "string panic",
			handler:   func(http.ResponseWriter, *http.Request) { panic("boom") },
			wantCode:  http.StatusInternalServerError,
			wantBody:  "Internal Server Error\n",
			panicking: true,
		},
		{
			name:      "error panic",
			handler:   func(http.ResponseWriter, *http.Request) { panic(errors.New("boom")) },
			wantCode:  http.StatusInternalServerError,
			wantBody:  "Internal Server Error\n",
			panicking: true,
		},
	}

	// not parallel: the panic counter is process wide
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.Errors.WithLabelValues(common.ComponentAPI, "panic")
			before := testutil.ToFloat64(counter)

			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				RecoveryMiddleware(logger.NewNopLogger())(tt.handler).
					ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			})

			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.wantBody, w.Body.String())

			want := before
			if tt.panicking {
				want++
			}
			require.InDelta(t, want, testutil.ToFloat64(counter), 0)
		})
	}
}

func TestMiddlewareChaining(t *testing.T) {
	t.Parallel()

	log := logger.NewNopLogger()
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	// same order as NewServer
	var handler http.Handler = panicking
	handler = RecoveryMiddleware(log)(handler)
	handler = LoggingMiddleware(log)(handler)
	handler = CORSMiddleware([]string{"*"})(handler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://a.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "https://a.example", w.Header().Get("Access-Control-Allow-Origin"))
}
