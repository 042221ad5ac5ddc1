package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts an OpenTelemetry span per request, named after the matched
// route pattern.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// TracingAttributes enriches the active request span with the correlation id
// and the tenant scope. It must run downstream of RequestID and Tracing so
// the span is still open when the attributes are set.
func TracingAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := c.GetString("request_id"); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
			if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
				if _, err := uuid.Parse(tenantID); err == nil {
					span.SetAttributes(attribute.String("tenant_id", tenantID))
				}
			}
		}
		c.Next()
	}
}
