// Package apierr задаёт единый формат ошибок API: {"error": "...", "details": [...]}.
package apierr

import (
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"
)

type Error struct {
	Status  int      `json:"-"`
	Message string   `json:"error" doc:"Error message"`
	Details []string `json:"details,omitempty" doc:"Validation details"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.Status
}

// New совместим с сигнатурой huma.NewError
func New(status int, msg string, errs ...error) huma.StatusError {
	e := &Error{Status: status, Message: msg}
	for _, err := range errs {
		if err != nil {
			e.Details = append(e.Details, err.Error())
		}
	}
	return e
}

// Install подменяет фабрику ошибок huma
func Install() {
	huma.NewError = New
}

// Write пишет ошибку напрямую, для middleware вне обработчиков huma
func Write(ctx huma.Context, status int, msg string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	return json.NewEncoder(ctx.BodyWriter()).Encode(&Error{Status: status, Message: msg})
}
