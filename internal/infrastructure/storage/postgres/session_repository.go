package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/session"
)

type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at)
         VALUES ($1, decode($2, 'hex'), $3)`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	var userID int
	err := r.db.Pool().QueryRow(ctx,
		`SELECT user_id FROM sessions
         WHERE token_hash = decode($1, 'hex') AND expires_at > NOW()`,
		tokenHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, session.ErrInvalidSession
		}
		return 0, fmt.Errorf("validate session: %w", err)
	}
	return userID, nil
}

func (r *SessionRepository) FindRefreshable(ctx context.Context, tokenHash string, issuedAfter time.Time) (int, error) {
	var userID int
	err := r.db.Pool().QueryRow(ctx,
		`SELECT user_id FROM sessions
         WHERE token_hash = decode($1, 'hex') AND created_at > $2`,
		tokenHash, issuedAfter).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, session.ErrInvalidSession
		}
		return 0, fmt.Errorf("find session: %w", err)
	}
	return userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.db.Pool().Exec(ctx,
		`DELETE FROM sessions WHERE token_hash = decode($1, 'hex')`, tokenHash)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired убирает сессии, которые уже нельзя обновить
func (r *SessionRepository) DeleteExpired(ctx context.Context, issuedBefore time.Time) (int64, error) {
	tag, err := r.db.Pool().Exec(ctx,
		`DELETE FROM sessions WHERE expires_at < NOW() AND created_at < $1`, issuedBefore)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
