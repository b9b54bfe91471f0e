// Package metrics defines the Prometheus metrics exposed by the service
// and small recorder helpers used by the aggregation pipeline and the HTTP
// layer. All metrics register themselves with the default registry via
// promauto at package initialization.
package metrics
