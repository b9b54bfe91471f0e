package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the news-digest application.
var tracer = otel.Tracer("news-digest")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "feed.refresh")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
