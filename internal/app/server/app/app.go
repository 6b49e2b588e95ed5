// Package app собирает сервер Windkey: хранилище, кэш, доменные сервисы и HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api"
	healthAPI "windkey/internal/app/server/api/http/health"
	"windkey/internal/app/server/config"
	"windkey/internal/app/server/crypto"
	"windkey/internal/domain/breach"
	"windkey/internal/domain/category"
	"windkey/internal/domain/credential"
	"windkey/internal/domain/history"
	"windkey/internal/domain/passgen"
	"windkey/internal/domain/session"
	"windkey/internal/domain/stats"
	"windkey/internal/domain/user"
	"windkey/internal/infrastructure/cache/memory"
	"windkey/internal/infrastructure/cache/redis"
	"windkey/internal/infrastructure/storage/postgres"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

// Cache хранит отозванные временные токены и ответы HIBP
type Cache interface {
	session.RevocationStore
	breach.Cache
	Close() error
}

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	storage  *postgres.Storage
	cache    Cache
	sessions *session.Service
	server   *http.Server
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	checks := map[string]healthAPI.Pinger{
		"database": healthAPI.PingFunc(storage.Pool().Ping),
	}

	cache, err := newCache(ctx, cfg, log)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	if rc, ok := cache.(*redis.Store); ok {
		checks["cache"] = rc
	}

	sessions := session.NewService(postgres.NewSessionRepository(storage, log), cfg.Session.TTL, cfg.Session.RefreshWindow, log)

	svc, err := services(cfg, storage, cache, log)
	if err != nil {
		_ = cache.Close()
		_ = storage.Close()
		return nil, err
	}
	svc.Sessions = sessions
	svc.Health = checks

	return &App{
		cfg:      cfg,
		log:      log,
		storage:  storage,
		cache:    cache,
		sessions: sessions,
		server: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           api.New(svc, cfg, log),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func newCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (Cache, error) {
	if cfg.Redis.Addr == "" {
		log.Info("redis is not configured, using in-memory cache")
		return memory.New(time.Minute), nil
	}

	store, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}
	return store, nil
}

func services(cfg *config.Config, storage *postgres.Storage, cache Cache, log *slog.Logger) (api.Services, error) {
	enc, err := crypto.NewServerEncryptor(cfg.Security.ServerKey, cfg.Security.ServerPassphrase)
	if err != nil {
		return api.Services{}, fmt.Errorf("init encryptor: %w", err)
	}

	pool := storage.Pool()

	userRepo := postgres.NewUserRepository(pool, log)
	credentialRepo := postgres.NewCredentialRepository(pool, log)
	categoryRepo := postgres.NewCategoryRepository(pool, log)
	historyRepo := postgres.NewHistoryRepository(pool, log)

	credentials := credential.NewService(credentialRepo, categoryRepo, enc, log)
	checker := breach.NewHIBPChecker(cfg.Breach.URL, cache, cfg.Breach.CacheTTL, log)

	return api.Services{
		Users:       user.NewService(userRepo, user.NewPasswordValidator(), user.NewTOTP(cfg.Security.OTPIssuer), log),
		TempTokens:  session.NewJWTIssuer(cfg.Security.Secret, cfg.Session.TempTokenTTL, cache),
		Credentials: credentials,
		Categories:  category.NewService(categoryRepo, log),
		History:     history.NewService(historyRepo, log),
		Stats:       stats.NewService(credentials, checker, cfg.Breach.Workers, log),
		Breach:      checker,
		Generator:   passgen.NewGenerator(nil),
	}, nil
}

// Run слушает адрес до отмены ctx, затем останавливает сервер
func (a *App) Run(ctx context.Context) error {
	go a.purgeSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", slog.String("address", a.cfg.Server.RunAddress), slog.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.server.Shutdown(shutdownCtx)
}

func (a *App) Close() error {
	return errors.Join(a.cache.Close(), a.storage.Close())
}

func (a *App) purgeSessions(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.sessions.PurgeExpired(ctx); err != nil {
				a.log.Warn("session purge failed", slog.String("error", err.Error()))
			}
		}
	}
}
