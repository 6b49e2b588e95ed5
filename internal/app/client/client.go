// Package client консольный клиент Windkey: сессия, хранилище и операции с паролями
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"

	"windkey/internal/app/client/config"
	"windkey/internal/app/client/crypto"
	"windkey/internal/app/client/session"
	"windkey/internal/app/client/store"
	"windkey/internal/domain/breach"
	"windkey/internal/domain/category"
	"windkey/internal/domain/credential"
	"windkey/internal/domain/history"
	"windkey/internal/domain/passgen"
	"windkey/internal/domain/stats"
)

const cacheKeyFile = ".cache.key"

var ErrNotAuthenticated = errors.New("необходимо войти: windkey auth login")

type App struct {
	config    *config.Config
	log       *slog.Logger
	http      *httpClient
	store     *store.Store
	sealer    *crypto.Sealer
	session   *session.Manager
	generator *passgen.Generator
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	key, err := crypto.LoadOrCreateKey(filepath.Join(cfg.ConfigDir, cacheKeyFile))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("ошибка загрузки ключа кэша: %w", err)
	}
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	httpCl := NewHTTPClient(cfg, log)
	manager := session.NewManager(httpCl, st, log)
	httpCl.SetTokenSource(manager.Token)

	return &App{
		config:    cfg,
		log:       log,
		http:      httpCl,
		store:     st,
		sealer:    sealer,
		session:   manager,
		generator: passgen.NewGenerator(nil),
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) Session() *session.Manager {
	return a.session
}

// Resume поднимает сохранённую сессию без сети
func (a *App) Resume(ctx context.Context) {
	a.session.Resume(ctx)
}

// Restore проверяет сохранённую сессию на сервере
func (a *App) Restore(ctx context.Context) error {
	return a.session.CheckExistingSession(ctx)
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, email, password string) (Registration, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Registration{}, session.ErrMissingCredentials
	}
	return a.http.Register(ctx, strings.TrimSpace(email), password)
}

// Login отправляет учётные данные и возвращает состояние после ответа сервера
func (a *App) Login(ctx context.Context, email, password string) (session.State, error) {
	err := a.session.SubmitPrimary(ctx, email, password)
	return a.session.State(), err
}

func (a *App) Verify(ctx context.Context, code string) error {
	return a.session.SubmitSecondFactor(ctx, code)
}

func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}

func (a *App) requireAuth() error {
	if a.session.State() != session.Authenticated {
		return ErrNotAuthenticated
	}
	return nil
}

// authorized выполняет защищённый запрос. Если сервер отверг токен, сессия
// восстанавливается (проверка и одно обновление) и запрос повторяется один раз.
func authorized[T any](ctx context.Context, a *App, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := a.requireAuth(); err != nil {
		return zero, err
	}

	v, err := call(ctx)
	if !errors.Is(err, session.ErrUnauthorized) {
		return v, err
	}

	a.log.Debug("токен отклонён сервером, восстанавливаем сессию")
	if rerr := a.session.CheckExistingSession(ctx); rerr != nil {
		return zero, rerr
	}
	if err := a.requireAuth(); err != nil {
		return zero, err
	}
	return call(ctx)
}

func authorizedErr(ctx context.Context, a *App, call func(context.Context) error) error {
	_, err := authorized(ctx, a, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	})
	return err
}

// ListPasswords загружает список с сервера. Если сервер недоступен, отдаёт
// последний сохранённый список; второй результат true означает данные из кэша.
func (a *App) ListPasswords(ctx context.Context, search string, categoryID int) ([]credential.Credential, bool, error) {
	items, err := authorized(ctx, a, func(ctx context.Context) ([]credential.Credential, error) {
		return a.http.ListPasswords(ctx, search, categoryID)
	})
	if err == nil {
		if search == "" && categoryID == 0 {
			a.saveCache(ctx, items)
		}
		return items, false, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) || errors.Is(err, ErrNotAuthenticated) {
		return nil, false, err
	}

	cached, ok := a.loadCache(ctx)
	if !ok {
		return nil, false, err
	}

	a.log.Warn("сервер недоступен, используем кэш", slog.String("error", err.Error()))
	return filterCached(cached, search, categoryID), true, nil
}

func (a *App) GetPassword(ctx context.Context, id int) (credential.Credential, error) {
	return authorized(ctx, a, func(ctx context.Context) (credential.Credential, error) {
		return a.http.GetPassword(ctx, id)
	})
}

func (a *App) CreatePassword(ctx context.Context, req credential.CreateRequest) (credential.Credential, error) {
	if strings.TrimSpace(req.Title) == "" || req.Password == "" {
		return credential.Credential{}, errors.New("название и пароль обязательны")
	}

	c, err := authorized(ctx, a, func(ctx context.Context) (credential.Credential, error) {
		return a.http.CreatePassword(ctx, req)
	})
	if err == nil {
		a.invalidateCache(ctx)
	}
	return c, err
}

func (a *App) UpdatePassword(ctx context.Context, id int, req credential.UpdateRequest) (credential.Credential, error) {
	c, err := authorized(ctx, a, func(ctx context.Context) (credential.Credential, error) {
		return a.http.UpdatePassword(ctx, id, req)
	})
	if err == nil {
		a.invalidateCache(ctx)
	}
	return c, err
}

func (a *App) DeletePassword(ctx context.Context, id int) error {
	err := authorizedErr(ctx, a, func(ctx context.Context) error {
		return a.http.DeletePassword(ctx, id)
	})
	if err == nil {
		a.invalidateCache(ctx)
	}
	return err
}

func (a *App) ListCategories(ctx context.Context) ([]category.Category, error) {
	return authorized(ctx, a, func(ctx context.Context) ([]category.Category, error) {
		return a.http.ListCategories(ctx)
	})
}

func (a *App) CreateCategory(ctx context.Context, req category.Request) (category.Category, error) {
	return authorized(ctx, a, func(ctx context.Context) (category.Category, error) {
		return a.http.CreateCategory(ctx, req)
	})
}

func (a *App) UpdateCategory(ctx context.Context, id int, req category.Request) (category.Category, error) {
	return authorized(ctx, a, func(ctx context.Context) (category.Category, error) {
		return a.http.UpdateCategory(ctx, id, req)
	})
}

func (a *App) DeleteCategory(ctx context.Context, id int) error {
	err := authorizedErr(ctx, a, func(ctx context.Context) error {
		return a.http.DeleteCategory(ctx, id)
	})
	if err == nil {
		// у паролей удалённой категории меняется category_id
		a.invalidateCache(ctx)
	}
	return err
}

// Generate генерирует пароль локально, без обращения к серверу
func (a *App) Generate(p passgen.Policy) (string, passgen.StrengthResult, error) {
	pw, err := a.generator.Generate(p)
	if err != nil {
		return "", passgen.StrengthResult{}, err
	}
	return pw, passgen.Score(pw), nil
}

// Strength оценивает пароль локально
func (a *App) Strength(password string) passgen.StrengthResult {
	return passgen.Score(password)
}

// GenerateRemote генерирует пароль на сервере тем же движком, что и локально
func (a *App) GenerateRemote(ctx context.Context, p passgen.Policy) (GenerateResult, error) {
	if err := p.Validate(); err != nil {
		return GenerateResult{}, err
	}
	return a.http.GeneratePassword(ctx, p)
}

// StrengthRemote запрашивает оценку у сервера
func (a *App) StrengthRemote(ctx context.Context, password string) (passgen.StrengthResult, error) {
	return a.http.CheckStrength(ctx, password)
}

func (a *App) CheckBreach(ctx context.Context, password string) (breach.Result, error) {
	if password == "" {
		return breach.Result{}, breach.ErrEmptyPassword
	}
	return authorized(ctx, a, func(ctx context.Context) (breach.Result, error) {
		return a.http.CheckBreach(ctx, password)
	})
}

func (a *App) History(ctx context.Context, limit, offset int) (history.Page, error) {
	return authorized(ctx, a, func(ctx context.Context) (history.Page, error) {
		return a.http.History(ctx, limit, offset)
	})
}

func (a *App) Stats(ctx context.Context, withBreaches bool) (stats.Stats, error) {
	return authorized(ctx, a, func(ctx context.Context) (stats.Stats, error) {
		return a.http.Stats(ctx, withBreaches)
	})
}

func (a *App) saveCache(ctx context.Context, items []credential.Credential) {
	data, err := json.Marshal(items)
	if err != nil {
		a.log.Warn("не удалось сериализовать кэш", slog.String("error", err.Error()))
		return
	}

	sealed, err := a.sealer.Seal(data)
	if err != nil {
		a.log.Warn("не удалось зашифровать кэш", slog.String("error", err.Error()))
		return
	}

	if err := a.store.Set(ctx, session.KeyPasswords, sealed); err != nil {
		a.log.Warn("не удалось сохранить кэш", slog.String("error", err.Error()))
	}
}

func (a *App) loadCache(ctx context.Context) ([]credential.Credential, bool) {
	sealed, err := a.store.Get(ctx, session.KeyPasswords)
	if err != nil || sealed == "" {
		return nil, false
	}

	data, err := a.sealer.Open(sealed)
	if err != nil {
		a.log.Warn("не удалось расшифровать кэш", slog.String("error", err.Error()))
		return nil, false
	}

	var items []credential.Credential
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (a *App) invalidateCache(ctx context.Context) {
	if err := a.store.Delete(ctx, session.KeyPasswords); err != nil {
		a.log.Warn("не удалось очистить кэш", slog.String("error", err.Error()))
	}
}

func filterCached(items []credential.Credential, search string, categoryID int) []credential.Credential {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" && categoryID == 0 {
		return items
	}

	out := make([]credential.Credential, 0, len(items))
	for _, c := range items {
		if categoryID > 0 && (c.CategoryID == nil || *c.CategoryID != categoryID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Username), search) &&
			!strings.Contains(strings.ToLower(c.URL), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}
