package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	DefaultTempTTL = 5 * time.Minute

	// MaxTempAttempts wrong codes revoke a temporary token.
	MaxTempAttempts = 5

	purposeSecondFactor = "2fa"
	revokedPrefix       = "temp-token:"
	attemptsPrefix      = "temp-attempts:"
)

var errNoStore = errors.New("no revocation store configured")

// RevocationStore remembers consumed token IDs until they expire.
type RevocationStore interface {
	// Revoke reports false when id was already revoked.
	Revoke(ctx context.Context, id string, ttl time.Duration) (bool, error)
	IsRevoked(ctx context.Context, id string) (bool, error)
	// Incr bumps a counter; ttl is applied when the counter is created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// TempIssuer issues short-lived tokens that only authorize the second
// factor step of a login.
type TempIssuer interface {
	Issue(ctx context.Context, userID int) (string, error)
	Verify(ctx context.Context, token string) (TempToken, error)
	Consume(ctx context.Context, t TempToken) error
	Fail(ctx context.Context, t TempToken) error
}

type TempToken struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
}

type tempClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	store  RevocationStore
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, store RevocationStore) *JWTIssuer {
	if ttl <= 0 {
		ttl = DefaultTempTTL
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

func (i *JWTIssuer) Issue(_ context.Context, userID int) (string, error) {
	now := i.now()
	claims := &tempClaims{
		Purpose: purposeSecondFactor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign temporary token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Verify(ctx context.Context, token string) (TempToken, error) {
	if token == "" {
		return TempToken{}, ErrInvalidTempToken
	}

	parsed, err := jwt.ParseWithClaims(token, &tempClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return TempToken{}, ErrInvalidTempToken
	}

	claims, ok := parsed.Claims.(*tempClaims)
	if !ok || claims.Purpose != purposeSecondFactor || claims.ID == "" || claims.ExpiresAt == nil {
		return TempToken{}, ErrInvalidTempToken
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return TempToken{}, ErrInvalidTempToken
	}

	if i.store != nil {
		revoked, err := i.store.IsRevoked(ctx, revokedPrefix+claims.ID)
		if err != nil {
			return TempToken{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return TempToken{}, ErrInvalidTempToken
		}
	}

	return TempToken{
		ID:        claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Consume makes t unusable for the rest of its lifetime. Only one caller
// succeeds; the others get ErrInvalidTempToken.
func (i *JWTIssuer) Consume(ctx context.Context, t TempToken) error {
	if i.store == nil {
		return errNoStore
	}

	first, err := i.store.Revoke(ctx, revokedPrefix+t.ID, i.remaining(t))
	if err != nil {
		return fmt.Errorf("revoke temporary token: %w", err)
	}
	if !first {
		return ErrInvalidTempToken
	}
	return nil
}

// Fail counts a wrong code for t. The MaxTempAttempts-th failure revokes t
// and returns ErrTooManyAttempts.
func (i *JWTIssuer) Fail(ctx context.Context, t TempToken) error {
	if i.store == nil {
		return errNoStore
	}

	n, err := i.store.Incr(ctx, attemptsPrefix+t.ID, i.remaining(t))
	if err != nil {
		return fmt.Errorf("count attempt: %w", err)
	}
	if n < MaxTempAttempts {
		return nil
	}

	if _, err := i.store.Revoke(ctx, revokedPrefix+t.ID, i.remaining(t)); err != nil {
		return fmt.Errorf("revoke temporary token: %w", err)
	}
	return ErrTooManyAttempts
}

func (i *JWTIssuer) remaining(t TempToken) time.Duration {
	ttl := t.ExpiresAt.Sub(i.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
