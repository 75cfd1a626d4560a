package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"auditarmor/internal/chain"
	dErrors "auditarmor/pkg/domain-errors"
	"auditarmor/pkg/platform/httputil"
	"auditarmor/pkg/requestcontext"
)

const (
	defaultEntriesLimit = 50
	maxEntriesLimit     = 500
)

// Chain is the read side of the audit log. Each method reads a single
// consistent state of the log.
type Chain interface {
	Summary(ctx context.Context) (chain.Summary, error)
	Tail(ctx context.Context, n int) ([]chain.Entry, int, error)
	VerifyLength(ctx context.Context) (bool, int, error)
}

// Handler exposes read-only inspection of the audit chain.
type Handler struct {
	chain  Chain
	logger *slog.Logger
}

func New(c Chain, logger *slog.Logger) *Handler {
	return &Handler{chain: c, logger: logger}
}

// Register mounts chain endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/chain", h.HandleSummary)
	r.Get("/audit/chain/entries", h.HandleEntries)
	r.Get("/audit/chain/verify", h.HandleVerify)
}

// HandleSummary handles GET /audit/chain.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.chain.Summary(ctx)
	if err != nil {
		h.fail(ctx, w, "read chain summary", err)
		return
	}

	resp := SummaryResponse{Length: summary.Length}
	if summary.HasTip {
		resp.Tip = &summary.Tip
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleEntries handles GET /audit/chain/entries?limit=N and returns the
// newest N entries in append order.
func (h *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, total, err := h.chain.Tail(ctx, limit)
	if err != nil {
		h.fail(ctx, w, "read chain entries", err)
		return
	}
	if entries == nil {
		entries = []chain.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, EntriesResponse{Total: total, Entries: entries})
}

// HandleVerify handles GET /audit/chain/verify. A broken chain is reported
// with 409 and the offending line; storage failures are 500.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	valid, length, err := h.chain.VerifyLength(ctx)
	var integrity *chain.IntegrityError
	switch {
	case err == nil:
	case errors.As(err, &integrity):
		h.logger.WarnContext(ctx, "chain verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"line", integrity.Line,
			"reason", integrity.Reason,
		)
		httputil.WriteJSON(w, http.StatusConflict, VerifyResponse{
			Valid:  false,
			Error:  string(dErrors.CodeIntegrity),
			Line:   integrity.Line,
			Reason: integrity.Reason,
		})
		return
	default:
		h.fail(ctx, w, "verify chain", err)
		return
	}

	h.logger.InfoContext(ctx, "chain verified",
		"request_id", requestcontext.RequestID(ctx),
		"length", length,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{Valid: valid, Length: length})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	h.logger.ErrorContext(ctx, op+" failed",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, op))
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultEntriesLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer")
	}
	return min(n, maxEntriesLimit), nil
}
