package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger - зависимость, которую проверяет health
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks     map[string]Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(checks map[string]Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		checks:     checks,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *struct{}) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out := &Output{Body: Response{Status: "OK"}}
	if len(h.checks) == 0 {
		return out, nil
	}

	out.Body.Checks = make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn("health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
			out.Body.Checks[name] = "unavailable"
			out.Body.Status = "DEGRADED"
			continue
		}
		out.Body.Checks[name] = "ok"
	}

	return out, nil
}
