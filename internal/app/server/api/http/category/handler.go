package category

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/audit"
	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/domain/category"
	"windkey/internal/domain/history"
)

type Handler struct {
	service    category.Servicer
	audit      *audit.Auditor
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service category.Servicer, auditor *audit.Auditor, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		audit:      auditor,
		log:        log.With(slog.String("component", "category_handler")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &listOutput{Body: items}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*categoryOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionCategoryCreated, c.Name)

	return &categoryOutput{Body: c}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*categoryOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionCategoryUpdated, c.Name)

	return &categoryOutput{Body: c}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionCategoryDeleted, "")

	out := &messageOutput{}
	out.Body.Message = "Category deleted successfully"
	return out, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, category.ErrNotFound):
		return huma.Error404NotFound("Category not found")
	case errors.Is(err, category.ErrAlreadyExists):
		return huma.Error409Conflict("Category already exists")
	case errors.Is(err, category.ErrInvalidData):
		return huma.Error400BadRequest(strings.TrimPrefix(err.Error(), category.ErrInvalidData.Error()+": "))
	default:
		h.log.Error("category operation failed", slog.String("error", err.Error()))
		return huma.Error500InternalServerError("Internal server error")
	}
}
