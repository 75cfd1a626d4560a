package frontend

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditarmor/pkg/testutil"
)

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func isolated(dir string) *Handler {
	h := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if dir != "" {
		h.candidates = h.candidates[:1]
	} else {
		h.candidates = nil
	}
	return h
}

func TestFrontend(t *testing.T) {
	testutil.Given(t, "no frontend is deployed", func(t *testing.T) {
		router := newRouter(isolated(""))

		testutil.When(t, "the root is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/"))

			testutil.Then(t, "the built-in page is served", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
				assert.Contains(t, rr.Body.String(), "API is running. Frontend not found.")
				assert.Contains(t, rr.Body.String(), `href="/api/v1/health"`)
			})
		})
	})

	testutil.Given(t, "a frontend directory with an index", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>dashboard</h1>"), 0o644))
		router := newRouter(isolated(dir))

		testutil.When(t, "the root is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/"))
			testutil.Then(t, "the index is served", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.Equal(t, "<h1>dashboard</h1>", rr.Body.String())
			})
		})

		testutil.When(t, "a client-side route is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/fleets/alpha"))
			testutil.Then(t, "the index is served", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.Equal(t, "<h1>dashboard</h1>", rr.Body.String())
			})
		})

		testutil.When(t, "an unknown API path is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/nope"))
			testutil.Then(t, "a JSON 404 is returned", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
			})
		})

		testutil.When(t, "a known API path is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/health"))
			testutil.Then(t, "the API handles it", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.Empty(t, rr.Body.String())
			})
		})

		testutil.When(t, "an unknown path is posted to", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/fleets/alpha"))
			testutil.Then(t, "a JSON 404 is returned", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
			})
		})
	})
}

func TestNewCandidates(t *testing.T) {
	h := New("/srv/web", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, append([]string{"/srv/web/index.html"}, DefaultCandidates...), h.candidates)

	h = New("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, DefaultCandidates, h.candidates)
}
