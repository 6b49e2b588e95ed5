// Windkey REST API.
//
// Публичные ручки: регистрация, вход, второй фактор, проверка и обновление
// сессии, выход, генерация и оценка паролей, проверка по базе утечек.
// Под авторизацией: пароли, категории, история действий, статистика.
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/apierr"
	"windkey/internal/app/server/api/http/audit"
	categoryAPI "windkey/internal/app/server/api/http/category"
	credentialAPI "windkey/internal/app/server/api/http/credential"
	healthAPI "windkey/internal/app/server/api/http/health"
	historyAPI "windkey/internal/app/server/api/http/history"
	"windkey/internal/app/server/api/http/middleware"
	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/app/server/api/http/middleware/clientinfo"
	"windkey/internal/app/server/api/http/middleware/logger"
	statsAPI "windkey/internal/app/server/api/http/stats"
	toolsAPI "windkey/internal/app/server/api/http/tools"
	userAPI "windkey/internal/app/server/api/http/user"
	"windkey/internal/app/server/config"
	"windkey/internal/domain/breach"
	"windkey/internal/domain/category"
	"windkey/internal/domain/credential"
	"windkey/internal/domain/history"
	"windkey/internal/domain/passgen"
	"windkey/internal/domain/session"
	"windkey/internal/domain/stats"
	"windkey/internal/domain/user"
)

// Services - доменные сервисы, из которых собирается API
type Services struct {
	Users       user.Servicer
	Sessions    session.Servicer
	TempTokens  session.TempIssuer
	Credentials credential.Servicer
	Categories  category.Servicer
	History     history.Servicer
	Stats       stats.Servicer
	Breach      breach.Checker
	Generator   *passgen.Generator
	Health      map[string]healthAPI.Pinger
}

type Handlers struct {
	Health     *healthAPI.Handler
	User       *userAPI.Handler
	Credential *credentialAPI.Handler
	Category   *categoryAPI.Handler
	Tools      *toolsAPI.Handler
	History    *historyAPI.Handler
	Stats      *statsAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(svc Services, cfg *config.Config, log *slog.Logger) *chi.Mux {
	apierr.Install()

	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Windkey API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(svc, cfg, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Credential.SetupRoutes(API)
	h.Category.SetupRoutes(API)
	h.Tools.SetupRoutes(API)
	h.History.SetupRoutes(API)
	h.Stats.SetupRoutes(API)

	return mux
}

func handlers(svc Services, cfg *config.Config, log *slog.Logger) *Handlers {
	authMW := auth.New(svc.Sessions, log)
	loggerMW := logger.New(log)
	auditor := audit.New(svc.History, log)
	middlewares := middleware.NewContainer()

	public := func() huma.Middlewares {
		middlewares.Add(clientinfo.Middleware(), loggerMW.Middleware())
		return middlewares.GetAllAndClear()
	}
	protected := func() huma.Middlewares {
		middlewares.Add(clientinfo.Middleware(), loggerMW.Middleware(), authMW.Middleware())
		return middlewares.GetAllAndClear()
	}

	return &Handlers{
		Health: healthAPI.NewHandler(svc.Health, log, public()),
		User: userAPI.NewHandler(svc.Users, svc.Sessions, svc.TempTokens, auditor,
			userAPI.Options{SessionTTL: cfg.Session.TTL, SecureCookie: cfg.IsProd()},
			log, public()),
		Credential: credentialAPI.NewHandler(svc.Credentials, auditor, log, protected()),
		Category:   categoryAPI.NewHandler(svc.Categories, auditor, log, protected()),
		Tools:      toolsAPI.NewHandler(svc.Generator, svc.Breach, log, public()),
		History:    historyAPI.NewHandler(svc.History, log, protected()),
		Stats:      statsAPI.NewHandler(svc.Stats, log, protected()),
	}
}
