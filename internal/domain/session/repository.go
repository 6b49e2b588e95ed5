package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (int, error)
	// FindRefreshable ignores expiry and only matches sessions created after issuedAfter.
	FindRefreshable(ctx context.Context, tokenHash string, issuedAfter time.Time) (int, error)
	Delete(ctx context.Context, tokenHash string) error
}

// Purger is implemented by repositories that can drop stale sessions.
type Purger interface {
	DeleteExpired(ctx context.Context, issuedBefore time.Time) (int64, error)
}
