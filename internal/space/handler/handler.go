package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"uims/internal/space/models"
	"uims/internal/space/service"
	"uims/pkg/domain"
	"uims/pkg/platform/httputil"
	"uims/pkg/platform/middleware/metadata"
	"uims/pkg/requestcontext"
)

// Service is the learning space service as seen by the HTTP layer.
type Service interface {
	Create(ctx context.Context, req service.CreateRequest) (*models.LearningSpace, error)
	Get(ctx context.Context, id domain.SpaceID) (*models.LearningSpace, error)
	Delete(ctx context.Context, id domain.SpaceID) (bool, error)
}

type CreateSpaceRequest struct {
	FloorID  int64  `json:"floor_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type SpaceResponse struct {
	ID        int64     `json:"id"`
	FloorID   int64     `json:"floor_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Handler serves the learning space endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a learning space Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the learning space routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/learning-spaces", h.handleCreate)
	r.Get("/learning-spaces/{spaceID}", h.handleGet)
	r.Delete("/learning-spaces/{spaceID}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.DecodeJSON[CreateSpaceRequest](r)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	space, err := h.service.Create(ctx, service.CreateRequest{
		FloorID:  req.FloorID,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(space))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseSpaceID(chi.URLParam(r, "spaceID"))
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	space, err := h.service.Get(ctx, id)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(space))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseSpaceID(chi.URLParam(r, "spaceID"))
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	deleted, err := h.service.Delete(ctx, id)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "learning space request failed",
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", metadata.ClientIP(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func toResponse(space *models.LearningSpace) SpaceResponse {
	return SpaceResponse{
		ID:        int64(space.ID),
		FloorID:   int64(space.FloorID),
		Name:      space.Name,
		Capacity:  space.Capacity.Int(),
		CreatedAt: space.CreatedAt,
	}
}
