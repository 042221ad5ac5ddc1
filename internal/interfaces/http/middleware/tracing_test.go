package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		_ = provider.Shutdown(t.Context())
	})
	return recorder
}

func spanAttribute(span sdktrace.ReadOnlySpan, key string) (string, bool) {
	for _, attr := range span.Attributes() {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}
	return "", false
}

func TestTracing(t *testing.T) {
	recorder := setupSpanRecorder(t)

	router := gin.New()
	router.Use(RequestID(), Tracing("test-service"), TracingAttributes())
	router.GET("/records", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	tenantID := "0c962ab1-68ee-409c-b8ad-2e3f5f1b2a3c"
	req := httptest.NewRequest("GET", "/records", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	req.Header.Set("X-Tenant-ID", tenantID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /records", spans[0].Name())

	got, ok := spanAttribute(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-42", got)

	got, ok = spanAttribute(spans[0], "tenant_id")
	require.True(t, ok)
	assert.Equal(t, tenantID, got)
}

func TestTracingAttributes_IgnoresMalformedTenant(t *testing.T) {
	recorder := setupSpanRecorder(t)

	router := gin.New()
	router.Use(RequestID(), Tracing("test-service"), TracingAttributes())
	router.GET("/records", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/records", nil)
	req.Header.Set("X-Tenant-ID", "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	_, ok := spanAttribute(spans[0], "tenant_id")
	assert.False(t, ok)
}
