package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const (
	DefaultTTL           = 24 * time.Hour
	DefaultRefreshWindow = 7 * 24 * time.Hour
)

type Servicer interface {
	Create(ctx context.Context, userID int) (string, error)
	Validate(ctx context.Context, token string) (int, error)
	Refresh(ctx context.Context, token string) (string, int, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo          Repository
	ttl           time.Duration
	refreshWindow time.Duration
	now           func() time.Time
	log           *slog.Logger
}

func NewService(repo Repository, ttl, refreshWindow time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if refreshWindow <= 0 {
		refreshWindow = DefaultRefreshWindow
	}

	return &Service{
		repo:          repo,
		ttl:           ttl,
		refreshWindow: refreshWindow,
		now:           time.Now,
		log:           log.With(slog.String("component", "session_service")),
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Create(ctx context.Context, userID int) (string, error) {
	// Генерация токена
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)

	expiresAt := s.now().Add(s.ttl)
	if err := s.repo.Create(ctx, userID, hashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}
	return s.repo.Validate(ctx, hashToken(token))
}

// Refresh exchanges a possibly expired token, issued within the refresh window,
// for a new one. The old session is removed.
func (s *Service) Refresh(ctx context.Context, token string) (string, int, error) {
	if token == "" {
		return "", 0, ErrRefreshExpired
	}

	oldHash := hashToken(token)
	userID, err := s.repo.FindRefreshable(ctx, oldHash, s.now().Add(-s.refreshWindow))
	if err != nil {
		if errors.Is(err, ErrInvalidSession) {
			return "", 0, ErrRefreshExpired
		}
		return "", 0, fmt.Errorf("find session: %w", err)
	}

	newToken, err := s.Create(ctx, userID)
	if err != nil {
		return "", 0, err
	}

	if err := s.repo.Delete(ctx, oldHash); err != nil {
		s.log.Warn("failed to delete refreshed session", slog.Int("user_id", userID), slog.String("error", err.Error()))
	}

	return newToken, userID, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired удаляет сессии, которые истекли и вышли из окна обновления.
// Если репозиторий не умеет чистить, ничего не делает.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	p, ok := s.repo.(Purger)
	if !ok {
		return 0, nil
	}

	n, err := p.DeleteExpired(ctx, s.now().Add(-s.refreshWindow))
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("expired sessions purged", slog.Int64("count", n))
	}
	return n, nil
}
