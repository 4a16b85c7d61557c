package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/wordbank/internal/api/shared"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.NewTestLogger()

	var seenTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContextOrDefault(r.Context()).Info("handled")
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	NewTraceMiddleware(log)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/words", nil))

	require.Len(t, seenTraceID, 32)
	assert.Equal(t, seenTraceID, rec.Header().Get(shared.TraceIDHeader))

	started := buf.EntriesWithMessage("request started")
	require.Len(t, started, 1)
	assert.Equal(t, seenTraceID, started[0]["trace_id"])
	assert.Equal(t, "/api/words", started[0]["path"])

	handled := buf.EntriesWithMessage("handled")
	require.Len(t, handled, 1)
	assert.Equal(t, seenTraceID, handled[0]["trace_id"], "handler logger should carry the trace ID")
}

func TestTraceMiddleware_DistinctPerRequest(t *testing.T) {
	h := NewTraceMiddleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEqual(t, first.Header().Get(shared.TraceIDHeader), second.Header().Get(shared.TraceIDHeader))
}
