package feed

import (
	"log/slog"
	"net/http"

	"news-digest/internal/handler/http/respond"
	"news-digest/internal/observability/logging"
	feedUC "news-digest/internal/usecase/feed"
)

// User-facing error messages. Upstream error details stay in the logs.
const (
	msgFeedUnavailable   = "failed to load news feed"
	msgCredentialProblem = "news source credentials are missing or invalid"
)

// GetHandler serves the aggregated digest as JSON.
type GetHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP handles GET /feed.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Svc.GetDigest(r.Context())
	if err != nil {
		logger := logging.WithRequestID(r.Context(), h.Logger)
		logger.Error("feed aggregation failed", slog.Any("error", err))

		msg := msgFeedUnavailable
		if feedUC.IsCredentialError(err) {
			msg = msgCredentialProblem
		}
		respond.Error(w, http.StatusBadGateway, msg)
		return
	}

	respond.JSON(w, http.StatusOK, toDigestDTO(entry))
}
