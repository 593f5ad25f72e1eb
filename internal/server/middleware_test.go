package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/tealscan/internal/common"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCorrelationIDMiddleware_Generated(t *testing.T) {
	var seen string
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = common.CorrelationID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	got := rr.Header().Get("X-Correlation-ID")
	assert.Len(t, got, 8)
	assert.Equal(t, got, seen, "correlation ID is stored in the request context")
}

func TestCorrelationIDMiddleware_FromHeader(t *testing.T) {
	for _, header := range []string{"X-Request-ID", "X-Correlation-ID"} {
		t.Run(header, func(t *testing.T) {
			var seen string
			handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = common.CorrelationID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(header, "req-42")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, "req-42", rr.Header().Get("X-Correlation-ID"))
			assert.Equal(t, "req-42", seen)
		})
	}
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	handler := corsMiddleware([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/scan", nil)
	req.Header.Set("Origin", "https://app.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSMiddleware_ConfiguredOrigins(t *testing.T) {
	handler := corsMiddleware([]string{"https://app.example/"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rr.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recoveryMiddleware(common.NewSilentLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal server error")
}

func TestRateLimitMiddleware_ScanPathsOnly(t *testing.T) {
	handler := rateLimitMiddleware(0.001, 1)(okHandler())

	serve := func(method, path string) int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, serve(http.MethodPost, "/api/scan"))
	assert.Equal(t, http.StatusTooManyRequests, serve(http.MethodPost, "/api/scan"))
	assert.Equal(t, http.StatusTooManyRequests, serve(http.MethodPost, "/api/scan/chart"))
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/health"))
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/scan"), "only POSTs take a token")
}

func TestResponseWriter_Flush(t *testing.T) {
	rr := httptest.NewRecorder()
	var w http.ResponseWriter = &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	flusher, ok := w.(http.Flusher)
	assert.True(t, ok)
	if ok {
		flusher.Flush()
	}
	assert.True(t, rr.Flushed)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	handler := rateLimitMiddleware(0, 0)(okHandler())
	for i := 0; i < 20; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/scan", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRequireMethod(t *testing.T) {
	rr := httptest.NewRecorder()
	ok := RequireMethod(rr, httptest.NewRequest(http.MethodDelete, "/", nil), http.MethodGet, http.MethodHead)

	assert.False(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
}
