// Package session ведёт клиентский вход: первичные учётные данные, второй фактор,
// восстановление сохранённой сессии и выход.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slog"

	"windkey/internal/domain/user"
)

type Manager struct {
	backend Backend
	storage Storage
	log     *slog.Logger

	mu        sync.RWMutex
	state     State
	token     string
	tempToken string
	user      *user.Public
	listeners []Listener

	primaryBusy atomic.Bool
	secondBusy  atomic.Bool
}

func NewManager(backend Backend, storage Storage, log *slog.Logger) *Manager {
	return &Manager{
		backend: backend,
		storage: storage,
		log:     log.With(slog.String("component", "session_manager")),
		state:   Anonymous,
	}
}

// Subscribe добавляет слушателя переходов
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) User() *user.Public {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// transition единственная точка изменения состояния. mutate выполняется под блокировкой.
func (m *Manager) transition(to State, mutate func()) {
	m.mu.Lock()
	from := m.state
	if mutate != nil {
		mutate()
	}
	m.state = to
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if from == to {
		return
	}

	m.log.Debug("session state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	for _, l := range listeners {
		l(from, to)
	}
}

// SubmitPrimary отправляет email и мастер-пароль
func (m *Manager) SubmitPrimary(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}

	if !m.primaryBusy.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer m.primaryBusy.Store(false)

	if m.State() == Authenticated {
		return ErrInvalidState
	}

	m.transition(Authenticating, nil)

	res, err := m.backend.Login(ctx, email, password)
	if err != nil {
		m.forget(ctx, KeyTempToken)
		m.transition(Anonymous, func() {
			m.tempToken = ""
		})
		return err
	}

	if res.Requires2FA {
		m.persist(ctx, KeyTempToken, res.TemporaryToken)
		m.transition(AwaitingSecondFactor, func() {
			m.tempToken = res.TemporaryToken
		})
		return nil
	}

	m.authenticate(ctx, res.Token, res.User)
	return nil
}

// SubmitSecondFactor отправляет TOTP код. При ошибке состояние и временный токен сохраняются.
func (m *Manager) SubmitSecondFactor(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if !validCode(code) {
		return ErrInvalidCode
	}

	if !m.secondBusy.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer m.secondBusy.Store(false)

	m.mu.RLock()
	state, temp := m.state, m.tempToken
	m.mu.RUnlock()

	if state != AwaitingSecondFactor {
		return ErrInvalidState
	}
	if temp == "" {
		m.transition(Anonymous, nil)
		return ErrInvalidState
	}

	res, err := m.backend.VerifySecondFactor(ctx, temp, code)
	if err != nil {
		return err
	}

	m.authenticate(ctx, res.Token, res.User)
	return nil
}

// CheckExistingSession восстанавливает сессию из хранилища: проверка токена,
// при отказе сервера ровно одно обновление, иначе очистка. Сбой сети не трогает
// сохранённые токены: сессия поднимается как в Resume, ошибка возвращается.
func (m *Manager) CheckExistingSession(ctx context.Context) error {
	token := m.load(ctx, KeyToken)
	if token == "" {
		if temp := m.load(ctx, KeyTempToken); temp != "" {
			m.transition(AwaitingSecondFactor, func() {
				m.tempToken = temp
			})
			return nil
		}
		m.transition(Anonymous, nil)
		return nil
	}

	chk, err := m.backend.CheckAuth(ctx, token)
	switch {
	case err == nil && chk.Authenticated:
		m.transition(Authenticated, func() {
			m.token = token
			m.user = chk.User
		})
		return nil
	case err != nil && !errors.Is(err, ErrUnauthorized):
		m.log.Warn("check-auth failed", slog.String("error", err.Error()))
		m.Resume(ctx)
		return err
	}

	res, err := m.backend.RefreshToken(ctx, token)
	if err == nil && res.Token != "" {
		m.authenticate(ctx, res.Token, res.User)
		return nil
	}
	if err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			m.log.Warn("token refresh failed", slog.String("error", err.Error()))
			m.Resume(ctx)
			return err
		}
		m.log.Debug("token refresh rejected", slog.String("error", err.Error()))
	}

	m.clear(ctx)
	return nil
}

// Resume поднимает сохранённые токены без обращения к серверу.
// Токен проверяется сервером при первом защищённом запросе.
func (m *Manager) Resume(ctx context.Context) {
	if token := m.load(ctx, KeyToken); token != "" {
		m.transition(Authenticated, func() {
			m.token = token
		})
		return
	}

	if temp := m.load(ctx, KeyTempToken); temp != "" {
		m.transition(AwaitingSecondFactor, func() {
			m.tempToken = temp
		})
	}
}

// Logout уведомляет сервер, если получится, и всегда очищает локальную сессию
func (m *Manager) Logout(ctx context.Context) {
	token := m.Token()
	if token == "" {
		token = m.load(ctx, KeyToken)
	}

	if token != "" {
		if err := m.backend.Logout(ctx, token); err != nil {
			m.log.Warn("logout request failed", slog.String("error", err.Error()))
		}
	}

	m.clear(ctx)
}

func (m *Manager) authenticate(ctx context.Context, token string, u *user.Public) {
	m.persist(ctx, KeyToken, token)
	m.forget(ctx, KeyTempToken)
	m.transition(Authenticated, func() {
		m.token = token
		m.tempToken = ""
		m.user = u
	})
}

func (m *Manager) clear(ctx context.Context) {
	m.forget(ctx, KeyToken, KeyTempToken, KeyPasswords)
	m.transition(Anonymous, func() {
		m.token = ""
		m.tempToken = ""
		m.user = nil
	})
}

func (m *Manager) load(ctx context.Context, key string) string {
	v, err := m.storage.Get(ctx, key)
	if err != nil {
		m.log.Warn("failed to read local storage", slog.String("key", key), slog.String("error", err.Error()))
		return ""
	}
	return v
}

func (m *Manager) persist(ctx context.Context, key, value string) {
	if err := m.storage.Set(ctx, key, value); err != nil {
		m.log.Warn("failed to write local storage", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (m *Manager) forget(ctx context.Context, keys ...string) {
	if err := m.storage.Delete(ctx, keys...); err != nil {
		m.log.Warn("failed to clear local storage", slog.String("error", err.Error()))
	}
}

func validCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
