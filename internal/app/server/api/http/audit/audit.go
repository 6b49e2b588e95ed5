// Package audit записывает действия пользователя в историю вместе с IP клиента.
package audit

import (
	"context"

	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/middleware/clientinfo"
	"windkey/internal/domain/history"
)

type Auditor struct {
	rec history.Recorder
	log *slog.Logger
}

func New(rec history.Recorder, log *slog.Logger) *Auditor {
	return &Auditor{
		rec: rec,
		log: log.With(slog.String("component", "audit")),
	}
}

// Record не возвращает ошибку: сбой записи истории не должен ломать запрос
func (a *Auditor) Record(ctx context.Context, userID int, action history.Action, details string) {
	if a == nil || a.rec == nil {
		return
	}

	err := a.rec.Record(ctx, history.Entry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: clientinfo.IP(ctx),
	})
	if err != nil {
		a.log.Warn("failed to record history",
			slog.Int("user_id", userID),
			slog.String("action", string(action)),
			slog.String("request_id", clientinfo.RequestID(ctx)),
			slog.String("error", err.Error()),
		)
	}
}
