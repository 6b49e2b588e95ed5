package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/audit"
	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/domain/history"
	"windkey/internal/domain/session"
	"windkey/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	temp       session.TempIssuer
	audit      *audit.Auditor
	sessionTTL time.Duration
	secure     bool
	log        *slog.Logger
	middleware huma.Middlewares
}

type Options struct {
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewHandler(
	service user.Servicer,
	sessions session.Servicer,
	temp session.TempIssuer,
	auditor *audit.Auditor,
	opts Options,
	log *slog.Logger,
	middleware huma.Middlewares,
) *Handler {
	return &Handler{
		service:    service,
		session:    sessions,
		temp:       temp,
		audit:      auditor,
		sessionTTL: opts.SessionTTL,
		secure:     opts.SecureCookie,
		log:        log.With(slog.String("component", "auth_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.verifyOp(), h.verify)
	huma.Register(api, h.checkAuthOp(), h.checkAuth)
	huma.Register(api, h.refreshOp(), h.refresh)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	reg, err := h.service.Register(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		var domainErr *user.DomainError
		if errors.As(err, &domainErr) {
			return nil, huma.Error400BadRequest(domainErr.Error())
		}
		h.log.Error("register failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Registration failed")
	}

	h.audit.Record(ctx, reg.UserID, history.ActionRegister, "Account created")

	return &registerOutput{
		Body: RegisterResponse{
			Message:         "User registered successfully",
			UserID:          reg.UserID,
			TwoFactorSecret: reg.TwoFactorSecret,
			OTPURL:          reg.OTPURL,
			QRCode:          reg.QRCode,
		},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) || errors.Is(err, user.ErrNotFound) {
			if u.ID != 0 {
				h.audit.Record(ctx, u.ID, history.ActionLoginFailed, "Invalid password")
			}
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		h.log.Error("authenticate failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Login failed")
	}

	if u.RequiresSecondFactor() {
		temp, err := h.temp.Issue(ctx, u.ID)
		if err != nil {
			h.log.Error("issue temporary token", slog.String("error", err.Error()))
			return nil, huma.Error500InternalServerError("Login failed")
		}
		return &loginOutput{
			Body: LoginResponse{Requires2FA: true, TemporaryToken: temp},
		}, nil
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Login failed")
	}
	h.audit.Record(ctx, u.ID, history.ActionLogin, "Successful login")

	return &loginOutput{
		SetCookie: h.sessionCookie(token),
		Body:      LoginResponse{Requires2FA: false, Token: token, User: u.Public()},
	}, nil
}

func (h *Handler) verify(ctx context.Context, input *verifyInput) (*sessionOutput, error) {
	raw, ok := auth.BearerToken(input.Authorization)
	if !ok {
		return nil, huma.Error401Unauthorized("Temporary token required")
	}

	temp, err := h.temp.Verify(ctx, raw)
	if err != nil {
		if errors.Is(err, session.ErrInvalidTempToken) {
			return nil, huma.Error401Unauthorized("Invalid or expired temporary token")
		}
		h.log.Error("verify temporary token", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Verification failed")
	}

	if err := h.service.VerifyCode(ctx, temp.UserID, input.Body.Code); err != nil {
		if errors.Is(err, user.ErrInvalidCode) || errors.Is(err, user.ErrNoSecondFactor) || errors.Is(err, user.ErrNotFound) {
			h.audit.Record(ctx, temp.UserID, history.ActionSecondFactorBad, "Invalid 2FA code")
			if ferr := h.temp.Fail(ctx, temp); ferr != nil {
				if errors.Is(ferr, session.ErrTooManyAttempts) {
					return nil, huma.Error401Unauthorized("Too many attempts, please log in again")
				}
				h.log.Warn("count 2fa attempt", slog.String("error", ferr.Error()))
			}
			return nil, huma.Error401Unauthorized("Invalid 2FA code")
		}
		h.log.Error("verify code", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Verification failed")
	}

	// параллельный запрос с тем же токеном мог успеть первым
	if err := h.temp.Consume(ctx, temp); err != nil {
		if errors.Is(err, session.ErrInvalidTempToken) {
			return nil, huma.Error401Unauthorized("Invalid or expired temporary token")
		}
		h.log.Error("consume temporary token", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Verification failed")
	}

	return h.startSession(ctx, temp.UserID, history.ActionLogin, "Successful login with 2FA")
}

func (h *Handler) checkAuth(ctx context.Context, input *tokenInput) (*checkAuthOutput, error) {
	out := &checkAuthOutput{Body: CheckAuthResponse{Authenticated: false}}

	token := auth.Token(input.Authorization, input.Session)
	if token == "" {
		return out, nil
	}

	userID, err := h.session.Validate(ctx, token)
	if err != nil {
		return out, nil
	}

	u, err := h.service.Find(ctx, userID)
	if err != nil {
		return out, nil
	}

	out.Body = CheckAuthResponse{Authenticated: true, User: u.Public()}
	return out, nil
}

func (h *Handler) refresh(ctx context.Context, input *tokenInput) (*sessionOutput, error) {
	token := auth.Token(input.Authorization, input.Session)

	newToken, userID, err := h.session.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrRefreshExpired) {
			return nil, huma.Error401Unauthorized("Session expired")
		}
		h.log.Error("refresh session", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Refresh failed")
	}

	u, err := h.service.Find(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("Session expired")
	}
	h.audit.Record(ctx, userID, history.ActionTokenRefreshed, "")

	return &sessionOutput{
		SetCookie: h.sessionCookie(newToken),
		Body:      SessionResponse{Token: newToken, User: u.Public()},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *tokenInput) (*logoutOutput, error) {
	token := auth.Token(input.Authorization, input.Session)

	if token != "" {
		if userID, err := h.session.Validate(ctx, token); err == nil {
			h.audit.Record(ctx, userID, history.ActionLogout, "")
		}
		if err := h.session.Revoke(ctx, token); err != nil {
			h.log.Warn("revoke session", slog.String("error", err.Error()))
		}
	}

	return &logoutOutput{
		SetCookie: h.cookie("", -1),
		Body: MessageResponse{Message: "Logout successful"},
	}, nil
}

func (h *Handler) startSession(ctx context.Context, userID int, action history.Action, details string) (*sessionOutput, error) {
	u, err := h.service.Find(ctx, userID)
	if err != nil {
		h.log.Error("find user", slog.Int("user_id", userID), slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Login failed")
	}

	token, err := h.session.Create(ctx, userID)
	if err != nil {
		h.log.Error("create session", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("Login failed")
	}
	h.audit.Record(ctx, userID, action, details)

	return &sessionOutput{
		SetCookie: h.sessionCookie(token),
		Body:      SessionResponse{Token: token, User: u.Public()},
	}, nil
}

func (h *Handler) sessionCookie(token string) string {
	return h.cookie(token, int(h.sessionTTL.Seconds()))
}

func (h *Handler) cookie(value string, maxAge int) string {
	c := http.Cookie{
		Name:     auth.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	}
	return c.String()
}
