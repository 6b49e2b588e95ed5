package category

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-list",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "Категории с количеством паролей",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "category-create",
		Method:        http.MethodPost,
		Path:          "/api/categories",
		Summary:       "Создать категорию",
		Tags:          []string{"categories"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-update",
		Method:      http.MethodPut,
		Path:        "/api/categories/{id}",
		Summary:     "Переименовать категорию",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-delete",
		Method:      http.MethodDelete,
		Path:        "/api/categories/{id}",
		Summary:     "Удалить категорию, пароли остаются без категории",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}
