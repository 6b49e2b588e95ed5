package tools

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) generateOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-generate",
		Method:      http.MethodGet,
		Path:        "/api/generate-password",
		Summary:     "Сгенерировать пароль",
		Tags:        []string{"tools"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) strengthOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-strength",
		Method:      http.MethodPost,
		Path:        "/api/check-password-strength",
		Summary:     "Оценить стойкость пароля",
		Tags:        []string{"tools"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) breachOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-breach",
		Method:      http.MethodPost,
		Path:        "/api/check-password-breach",
		Summary:     "Проверить пароль по базе утечек",
		Description: "Наружу уходят только первые 5 символов SHA-1",
		Tags:        []string{"tools"},
		Middlewares: h.middleware,
	}
}
