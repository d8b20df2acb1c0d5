package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerMiddlewareLogsRoutePattern(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	r := chi.NewRouter()
	r.Use(InjectLoggerMiddleware(zap.New(core)))
	r.Use(RequestLoggerMiddleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/42", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, "/api/products/{id}", fields["route"])
	require.EqualValues(t, http.StatusNotFound, fields["status"])
}

func TestRecoveryMiddlewareReturnsJSONError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	handler := InjectLoggerMiddleware(zap.New(core))(RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestResponseRecorderFlushes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapped := newResponseRecorder(rec)
	var _ http.Flusher = wrapped
	_, _ = wrapped.Write([]byte("data"))
	wrapped.Flush()

	require.True(t, rec.Flushed)
	require.EqualValues(t, 4, wrapped.BytesWritten())
}

func TestFromContextDefaultsToNop(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))
	logger, err := NewLogger("not-a-level")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
