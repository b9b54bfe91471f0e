package feed

import (
	"log/slog"
	"net/http"
)

// Register registers the feed HTTP handlers with the given mux: the HTML
// digest page at the root and the JSON endpoint at /feed.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("GET /{$}", PageHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /feed", GetHandler{Svc: svc, Logger: logger})
}
