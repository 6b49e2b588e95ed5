package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/apierr"
	"windkey/internal/domain/session"
)

// SessionCookie дублирует bearer-токен для браузерных клиентов
const SessionCookie = "session"

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const (
	UserIDKey contextKey = "userID"
	tokenKey  contextKey = "sessionToken"
)

func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := Token(ctx.Header("Authorization"), cookieValue(ctx))
		if token == "" {
			a.log.Debug("missing bearer token", slog.String("path", ctx.URL().Path))
			a.reject(ctx)
			return
		}

		userID, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("session validation failed", slog.String("error", err.Error()))
			a.reject(ctx)
			return
		}

		newCtx := WithUserID(ctx.Context(), userID)
		newCtx = context.WithValue(newCtx, tokenKey, token)

		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	if err := apierr.Write(ctx, http.StatusUnauthorized, "Unauthorized"); err != nil {
		a.log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// Token достаёт токен из заголовка Authorization, иначе из cookie
func Token(authorization, cookie string) string {
	if t, ok := BearerToken(authorization); ok {
		return t
	}
	return strings.TrimSpace(cookie)
}

func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func cookieValue(ctx huma.Context) string {
	header := ctx.Header("Cookie")
	if header == "" {
		return ""
	}
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	c, err := req.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// SessionToken возвращает токен, с которым прошёл запрос
func SessionToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
