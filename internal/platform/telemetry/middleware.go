package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// opsMetrics holds ops server request metrics.
type opsMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

func newOpsMetrics() (*opsMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"quotebot.ops.request.duration",
		metric.WithDescription("Ops endpoint request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"quotebot.ops.request.total",
		metric.WithDescription("Total number of ops endpoint requests"),
	)
	if err != nil {
		return nil, err
	}

	return &opsMetrics{requestDuration: requestDuration, requestTotal: requestTotal}, nil
}

// Middleware returns the ops server instrumentation chain: otelgin tracing
// followed by request metrics and an X-Trace-ID response header.
func Middleware(serviceName string) []gin.HandlerFunc {
	metrics, err := newOpsMetrics()
	if err != nil {
		otel.Handle(err)
	}

	record := func(c *gin.Context) {
		start := time.Now()

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().HasTraceID() {
			c.Header("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		c.Next()

		if metrics == nil {
			return
		}

		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
		metrics.requestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
		metrics.requestTotal.Add(c.Request.Context(), 1, attrs)
	}

	return []gin.HandlerFunc{otelgin.Middleware(serviceName), record}
}
