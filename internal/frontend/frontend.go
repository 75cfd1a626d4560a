// Package frontend serves the single-page dashboard and its routing fallback.
package frontend

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "auditarmor/pkg/domain-errors"
	"auditarmor/pkg/platform/httputil"
)

// apiPrefix marks paths that must never fall through to the page.
const apiPrefix = "/api/"

// DefaultCandidates are probed, in order, after the configured directory.
var DefaultCandidates = []string{
	"/app/frontend/index.html",
	"../frontend/index.html",
	"frontend/index.html",
}

const fallbackPage = `<!DOCTYPE html>
<html>
<head><title>Audit Armor</title></head>
<body style="background:#1a0a0a;color:white;font-family:sans-serif;display:flex;justify-content:center;align-items:center;height:100vh;">
    <div style="text-align:center;">
        <h1 style="color:#FF4500;">&#x1F6E1;&#xFE0F; Audit Armor API</h1>
        <p>API is running. Frontend not found.</p>
        <p>Try: <a href="/api/v1/health" style="color:#FF6B35;">/api/v1/health</a></p>
    </div>
</body>
</html>
`

// Handler serves index.html from the first candidate that exists, or a
// built-in page when none does. Candidates are probed on every request so a
// frontend deployed after startup is picked up.
type Handler struct {
	candidates []string
	logger     *slog.Logger
}

// New builds a handler that looks in dir first. An empty dir only uses the
// default candidates.
func New(dir string, logger *slog.Logger) *Handler {
	var candidates []string
	if dir != "" {
		candidates = append(candidates, filepath.Join(dir, "index.html"))
	}
	candidates = append(candidates, DefaultCandidates...)
	return &Handler{candidates: candidates, logger: logger}
}

// Register mounts the page on / and as the router's not-found handler.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.NotFound(h.HandleNotFound)
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.page(r))
}

// HandleNotFound serves the page for unknown GET paths so client-side routes
// resolve. API paths and other methods get a JSON 404.
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "API endpoint not found"))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "not found"))
		return
	}
	h.HandleIndex(w, r)
}

func (h *Handler) page(r *http.Request) []byte {
	for _, path := range h.candidates {
		content, err := os.ReadFile(path)
		if err == nil {
			return content
		}
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.WarnContext(r.Context(), "failed to read frontend index",
				"path", path,
				"error", err,
			)
		}
	}
	return []byte(fallbackPage)
}
