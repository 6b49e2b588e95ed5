package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/user"
)

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash, twoFactorSecret string) (int, error) {
	const query = `
		INSERT INTO users (email, password_hash, two_factor_secret)
		VALUES ($1, $2, $3)
		RETURNING id`

	var userID int
	err := r.pool.QueryRow(ctx, query, email, passwordHash, nullable(twoFactorSecret)).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, user.ErrEmailTaken
		}
		r.log.Error("failed to create user", "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}
	return userID, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	const query = `
		SELECT id, email, password_hash, COALESCE(two_factor_secret, ''), created_at
		FROM users WHERE email = $1`

	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (user.User, error) {
	const query = `
		SELECT id, email, password_hash, COALESCE(two_factor_secret, ''), created_at
		FROM users WHERE id = $1`

	return r.findOne(ctx, query, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.TwoFactorSecret, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
