package credential

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/audit"
	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/domain/credential"
	"windkey/internal/domain/history"
)

type Handler struct {
	service    credential.Servicer
	audit      *audit.Auditor
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service credential.Servicer, auditor *audit.Auditor, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		audit:      auditor,
		log:        log.With(slog.String("component", "credential_handler")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.List(ctx, userID, credential.ListFilter{
		Search:     input.Search,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &listOutput{Body: items}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*findOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Find(ctx, userID, input.ID)
	if err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionPasswordViewed, c.Title)

	return &findOutput{Body: c}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*credentialOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionPasswordCreated, c.Title)

	c.Password = ""
	return &credentialOutput{Body: c}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*credentialOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	c, err := h.service.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionPasswordUpdated, c.Title)

	return &credentialOutput{Body: c}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*messageOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.mapError(err)
	}
	h.audit.Record(ctx, userID, history.ActionPasswordDeleted, "")

	out := &messageOutput{}
	out.Body.Message = "Password deleted successfully"
	return out, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("Password not found")
	case errors.Is(err, credential.ErrCategoryNotFound):
		return huma.Error400BadRequest("Category not found")
	case errors.Is(err, credential.ErrInvalidData):
		msg := strings.TrimPrefix(err.Error(), credential.ErrInvalidData.Error()+": ")
		return huma.Error400BadRequest(msg)
	default:
		h.log.Error("password operation failed", slog.String("error", err.Error()))
		return huma.Error500InternalServerError("Internal server error")
	}
}
