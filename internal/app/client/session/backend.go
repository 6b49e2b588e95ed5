package session

import (
	"context"
	"errors"

	"windkey/internal/domain/user"
)

// Ключи локального хранилища
const (
	KeyToken     = "token"
	KeyTempToken = "tempToken"
	KeyPasswords = "passwords"
)

var (
	ErrInvalidState       = errors.New("operation is not allowed in the current state")
	ErrRequestInFlight    = errors.New("request already in progress")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCode        = errors.New("code must be 6 digits")

	// ErrUnauthorized сервер отклонил токен (401). Ошибки Backend сопоставляются
	// с ним через errors.Is; прочие ошибки считаются сбоем транспорта.
	ErrUnauthorized = errors.New("session rejected by server")
)

type LoginResult struct {
	Requires2FA    bool
	TemporaryToken string
	Token          string
	User           *user.Public
}

type AuthResult struct {
	Token string
	User  *user.Public
}

type CheckResult struct {
	Authenticated bool
	User          *user.Public
}

// Backend серверная часть протокола входа
type Backend interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	VerifySecondFactor(ctx context.Context, tempToken, code string) (AuthResult, error)
	CheckAuth(ctx context.Context, token string) (CheckResult, error)
	RefreshToken(ctx context.Context, token string) (AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// Storage постоянное хранилище токенов. Get возвращает "" для отсутствующего ключа.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
