package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/patient-api/internal/api/shared"
	"github.com/phrazzld/patient-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddlewareGeneratesTraceID(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	var seen string
	h := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/patients", nil))

	require.Len(t, seen, shared.TraceIDLength)
	assert.Equal(t, seen, rr.Header().Get(TraceHeader))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	logger.AssertLogField(t, buf, "msg", "inside handler")
	logger.AssertLogField(t, buf, "trace_id", seen)
	logger.AssertLogField(t, buf, "msg", "request completed")
	logger.AssertLogField(t, buf, "status", float64(http.StatusTeapot))
}

func TestTraceMiddlewareReusesValidIncomingID(t *testing.T) {
	_, log := logger.SetupTestLogger(t)

	var seen string
	h := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "6ba7b8109dad11d180b400c04fd430c8", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Len(t, seen, shared.TraceIDLength)
	assert.NotEqual(t, "<script>", seen)
}

func TestTraceMiddlewareIncludesRequestID(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	h := chimw.RequestID(TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("handled")
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	logger.AssertLogField(t, buf, "request_id", "req-123")
}
