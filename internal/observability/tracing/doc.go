// Package tracing provides OpenTelemetry tracing for the HTTP boundary and
// the aggregation pipeline. The exporter is configured by the operator's
// environment; without one, spans are no-ops with negligible overhead.
package tracing
