package stats

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/domain/stats"
)

type getInput struct {
	Breaches bool `query:"breaches" default:"false" doc:"Проверить пароли по базе утечек"`
}

type getOutput struct {
	Body stats.Stats
}

type Handler struct {
	service    stats.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service stats.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "stats_handler")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "stats-get",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Статистика по стойкости и повторам паролей",
		Tags:        []string{"stats"},
		Middlewares: h.middleware,
	}, h.get)
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	st, err := h.service.Get(ctx, userID, input.Breaches)
	if err != nil {
		h.log.Error("compute stats", slog.Int("user_id", userID), slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &getOutput{Body: st}, nil
}
