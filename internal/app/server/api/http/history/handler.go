package history

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/domain/history"
)

type listInput struct {
	Limit  int `query:"limit" default:"50" minimum:"1" maximum:"200"`
	Offset int `query:"offset" default:"0" minimum:"0"`
}

type listOutput struct {
	Body history.Page
}

type Handler struct {
	service    history.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service history.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "history_handler")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "history-list",
		Method:      http.MethodGet,
		Path:        "/api/history",
		Summary:     "Журнал действий пользователя",
		Tags:        []string{"history"},
		Middlewares: h.middleware,
	}, h.list)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	page, err := h.service.List(ctx, userID, input.Limit, input.Offset)
	if err != nil {
		h.log.Error("list history", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &listOutput{Body: page}, nil
}
