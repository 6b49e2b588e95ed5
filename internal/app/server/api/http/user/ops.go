package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/api/register",
		Summary:       "Регистрация пользователя",
		Description:   "Создаёт пользователя и возвращает секрет TOTP с QR-кодом",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Вход по email и паролю",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) verifyOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-verify-2fa",
		Method:      http.MethodPost,
		Path:        "/api/verify-2fa",
		Summary:     "Проверка второго фактора",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) checkAuthOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-check-auth",
		Method:      http.MethodGet,
		Path:        "/api/check-auth",
		Summary:     "Проверка текущей сессии",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) refreshOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-refresh-token",
		Method:      http.MethodPost,
		Path:        "/api/refresh-token",
		Summary:     "Обновление токена сессии",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-logout",
		Method:      http.MethodPost,
		Path:        "/api/logout",
		Summary:     "Выход",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}
