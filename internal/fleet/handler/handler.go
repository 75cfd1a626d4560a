package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"auditarmor/internal/fleet/models"
	dErrors "auditarmor/pkg/domain-errors"
	"auditarmor/pkg/platform/httputil"
	"auditarmor/pkg/requestcontext"
)

// Service provides the fleet dashboard views.
type Service interface {
	Ships(ctx context.Context) ([]models.Ship, error)
	Ship(ctx context.Context, id string) (*models.Ship, error)
	Fleets(ctx context.Context) ([]models.Fleet, error)
	Score(ctx context.Context) (*models.Score, error)
	Tasks(ctx context.Context) ([]models.Task, error)
	Governance(ctx context.Context) (*models.Governance, error)
	Updates(ctx context.Context) ([]models.Update, error)
	Orbit(ctx context.Context) (*models.Orbit, error)
	CEODashboard(ctx context.Context) (*models.CEODashboard, error)
	DeepDashboard(ctx context.Context) (*models.DeepDashboard, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/governance", h.HandleGovernance)
	r.Get("/score", h.HandleScore)
	r.Get("/ships", h.HandleShips)
	r.Get("/ships/{shipID}", h.HandleShip)
	r.Get("/fleets", h.HandleFleets)
	r.Get("/tasks", h.HandleTasks)
	r.Get("/dashboard/ceo", h.HandleCEODashboard)
	r.Get("/dashboard/deep", h.HandleDeepDashboard)
	r.Get("/updates", h.HandleUpdates)
	r.Get("/orbit", h.HandleOrbit)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: models.ServiceName,
		Version: models.Version,
	})
}

func (h *Handler) HandleGovernance(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Governance(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "governance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.service.Score(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "score", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, score)
}

func (h *Handler) HandleShips(w http.ResponseWriter, r *http.Request) {
	ships, err := h.service.Ships(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "ships", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ShipsResponse{Ships: nonNil(ships), Total: len(ships)})
}

func (h *Handler) HandleShip(w http.ResponseWriter, r *http.Request) {
	ship, err := h.service.Ship(r.Context(), chi.URLParam(r, "shipID"))
	if err != nil {
		h.fail(r.Context(), w, "ship", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ship)
}

func (h *Handler) HandleFleets(w http.ResponseWriter, r *http.Request) {
	fleets, err := h.service.Fleets(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "fleets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.FleetsResponse{Fleets: nonNil(fleets)})
}

func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.Tasks(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "tasks", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.TasksResponse{Tasks: nonNil(tasks), Total: len(tasks)})
}

func (h *Handler) HandleCEODashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.CEODashboard(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "ceo dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) HandleDeepDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.DeepDashboard(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "deep dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dash)
}

func (h *Handler) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.service.Updates(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "updates", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.UpdatesResponse{Updates: nonNil(updates)})
}

func (h *Handler) HandleOrbit(w http.ResponseWriter, r *http.Request) {
	orbit, err := h.service.Orbit(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "orbit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orbit)
}

// fail logs unexpected failures; client errors such as an unknown ship are
// written without logging.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, view string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to load "+view,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
