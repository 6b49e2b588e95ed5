package credential

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var security = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-list",
		Method:      http.MethodGet,
		Path:        "/api/passwords",
		Summary:     "Список сохранённых паролей (без самих паролей)",
		Tags:        []string{"passwords"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-get",
		Method:      http.MethodGet,
		Path:        "/api/passwords/{id}",
		Summary:     "Получить запись с расшифрованным паролем",
		Tags:        []string{"passwords"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "password-create",
		Method:        http.MethodPost,
		Path:          "/api/passwords",
		Summary:       "Сохранить пароль",
		Tags:          []string{"passwords"},
		Security:      security,
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-update",
		Method:      http.MethodPut,
		Path:        "/api/passwords/{id}",
		Summary:     "Частичное обновление записи",
		Tags:        []string{"passwords"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "password-delete",
		Method:      http.MethodDelete,
		Path:        "/api/passwords/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"passwords"},
		Security:    security,
		Middlewares: h.middleware,
	}
}
