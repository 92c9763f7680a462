package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"uims/internal/component/models"
	"uims/pkg/domain"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/httputil"
	"uims/pkg/platform/middleware/metadata"
	"uims/pkg/platform/pagination"
	"uims/pkg/requestcontext"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Service is the component repository as seen by the HTTP layer.
type Service interface {
	Add(ctx context.Context, spaceID domain.SpaceID, in models.ComponentInput) (*models.Component, error)
	GetByID(ctx context.Context, id domain.ComponentID) (*models.Component, error)
	ListBySpace(ctx context.Context, spaceID domain.SpaceID, pageSize, pageIndex int, search string) (pagination.Result[models.Component], error)
	ListAll(ctx context.Context, pageSize, pageIndex int) ([]models.Component, error)
	Update(ctx context.Context, spaceID domain.SpaceID, id domain.ComponentID, in models.ComponentInput) (bool, error)
	Delete(ctx context.Context, id domain.ComponentID) (bool, error)
	History(ctx context.Context, id domain.ComponentID) ([]models.AuditRecord, error)
}

// Handler serves the component endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a component Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the component routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/learning-spaces/{spaceID}/components", h.handleAdd)
	r.Get("/learning-spaces/{spaceID}/components", h.handleListBySpace)
	r.Put("/learning-spaces/{spaceID}/components/{componentID}", h.handleUpdate)

	r.Get("/components", h.handleListAll)
	r.Get("/components/{componentID}", h.handleGet)
	r.Delete("/components/{componentID}", h.handleDelete)
	r.Get("/components/{componentID}/history", h.handleHistory)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spaceID, err := domain.ParseSpaceID(chi.URLParam(r, "spaceID"))
	if err != nil {
		h.fail(ctx, w, "add", err)
		return
	}
	in, err := decodeInput(r)
	if err != nil {
		h.fail(ctx, w, "add", err)
		return
	}

	c, err := h.service.Add(ctx, spaceID, in)
	if err != nil {
		h.fail(ctx, w, "add", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toComponentResponse(*c))
}

func (h *Handler) handleListBySpace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spaceID, err := domain.ParseSpaceID(chi.URLParam(r, "spaceID"))
	if err != nil {
		h.fail(ctx, w, "list_by_space", err)
		return
	}
	size, index, err := parsePage(r)
	if err != nil {
		h.fail(ctx, w, "list_by_space", err)
		return
	}

	res, err := h.service.ListBySpace(ctx, spaceID, size, index, r.URL.Query().Get("search"))
	if err != nil {
		h.fail(ctx, w, "list_by_space", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPageResponse(res))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spaceID, err := domain.ParseSpaceID(chi.URLParam(r, "spaceID"))
	if err != nil {
		h.fail(ctx, w, "update", err)
		return
	}
	id, err := domain.ParseComponentID(chi.URLParam(r, "componentID"))
	if err != nil {
		h.fail(ctx, w, "update", err)
		return
	}
	in, err := decodeInput(r)
	if err != nil {
		h.fail(ctx, w, "update", err)
		return
	}

	updated, err := h.service.Update(ctx, spaceID, id, in)
	if err != nil {
		h.fail(ctx, w, "update", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UpdateResponse{Updated: updated})
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	size, index, err := parsePage(r)
	if err != nil {
		h.fail(ctx, w, "list_all", err)
		return
	}
	items, err := h.service.ListAll(ctx, size, index)
	if err != nil {
		h.fail(ctx, w, "list_all", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Items: toComponentResponses(items)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseComponentID(chi.URLParam(r, "componentID"))
	if err != nil {
		h.fail(ctx, w, "get", err)
		return
	}
	c, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toComponentResponse(*c))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseComponentID(chi.URLParam(r, "componentID"))
	if err != nil {
		h.fail(ctx, w, "delete", err)
		return
	}
	deleted, err := h.service.Delete(ctx, id)
	if err != nil {
		h.fail(ctx, w, "delete", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseComponentID(chi.URLParam(r, "componentID"))
	if err != nil {
		h.fail(ctx, w, "history", err)
		return
	}
	records, err := h.service.History(ctx, id)
	if err != nil {
		h.fail(ctx, w, "history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHistoryResponse(records))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "component request failed",
			"operation", op,
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", metadata.ClientIP(ctx),
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, "component request rejected",
			"operation", op,
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", metadata.ClientIP(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func decodeInput(r *http.Request) (models.ComponentInput, error) {
	req, err := httputil.DecodeJSON[ComponentRequest](r)
	if err != nil {
		return models.ComponentInput{}, err
	}
	return req.ToInput()
}

// parsePage reads page_size and page_index. Absent values take defaults;
// values below 1 are passed on so the service rejects them.
func parsePage(r *http.Request) (size, index int, err error) {
	q := r.URL.Query()
	size, err = intParam(q.Get("page_size"), "page_size", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if size > maxPageSize {
		return 0, 0, dErrors.New(dErrors.CodeBadRequest, "page_size must be at most "+strconv.Itoa(maxPageSize))
	}
	index, err = intParam(q.Get("page_index"), "page_index", 1)
	if err != nil {
		return 0, 0, err
	}
	return size, index, nil
}

func intParam(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, name+" must be an integer")
	}
	return v, nil
}
