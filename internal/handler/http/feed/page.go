package feed

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/observability/logging"
	feedUC "news-digest/internal/usecase/feed"
)

var pageTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"published": formatPublished,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>News Digest</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
article { margin-bottom: 1.5rem; }
h2 { margin-bottom: 0.25rem; }
.meta { color: #666; font-size: 0.85rem; }
.error { background: #fdd; border: 1px solid #c00; padding: 1rem; }
</style>
</head>
<body>
<h1>News Digest</h1>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- else}}
{{- if not .FetchedAt.IsZero}}
<p class="meta">Updated {{published .FetchedAt}}</p>
{{- end}}
{{- range .Articles}}
<article>
<h2><a href="{{.URL}}">{{.Title}}</a></h2>
<p class="meta">{{.Source}} &middot; {{published .PublishedAt}}</p>
{{- if .Description}}
<p>{{.Description}}</p>
{{- end}}
</article>
{{- else}}
<p>No articles available.</p>
{{- end}}
{{- end}}
</body>
</html>
`))

type pageData struct {
	Articles  []entity.Article
	FetchedAt time.Time
	Error     string
}

func formatPublished(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	return t.Format("Jan 2, 2006 15:04 MST")
}

// PageHandler renders the digest as a simple HTML page.
type PageHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP handles GET /.
func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := pageData{}

	entry, err := h.Svc.GetDigest(r.Context())
	if err != nil {
		logger := logging.WithRequestID(r.Context(), h.Logger)
		logger.Error("feed aggregation failed", slog.Any("error", err))

		data.Error = msgFeedUnavailable
		if feedUC.IsCredentialError(err) {
			data.Error = msgCredentialProblem
		}
	} else {
		data.Articles = entry.Articles
		data.FetchedAt = entry.FetchedAt
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Error != "" {
		w.WriteHeader(http.StatusBadGateway)
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		h.Logger.Error("failed to render digest page", slog.Any("error", err))
	}
}
