package http

import (
	"net/http"
	"time"

	"news-digest/internal/handler/http/respond"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves liveness and readiness information. The cache store
// check is optional; with a nil Pinger only process liveness is reported.
type HealthHandler struct {
	CacheStore Pinger
}

// ServeHTTP handles GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{},
	}
	code := http.StatusOK

	if h.CacheStore != nil {
		if err := h.CacheStore.Ping(); err != nil {
			resp.Status = "unhealthy"
			resp.Checks["cache_store"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			resp.Checks["cache_store"] = "ok"
		}
	}

	respond.JSON(w, code, resp)
}
