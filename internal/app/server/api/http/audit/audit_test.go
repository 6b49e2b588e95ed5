package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/middleware/clientinfo"
	"windkey/internal/domain/history"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e history.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func TestAuditor_Record(t *testing.T) {
	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, history.Entry{
		UserID:    5,
		Action:    history.ActionLogin,
		Details:   "Successful login",
		IPAddress: "198.51.100.1",
	}).Return(nil).Once()

	ctx := clientinfo.WithIP(context.Background(), "198.51.100.1")
	New(rec, slog.Default()).Record(ctx, 5, history.ActionLogin, "Successful login")

	rec.AssertExpectations(t)
}

func TestAuditor_RecordSwallowsErrors(t *testing.T) {
	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		New(rec, slog.Default()).Record(context.Background(), 1, history.ActionLogout, "")
	})

	var nilAuditor *Auditor
	assert.NotPanics(t, func() {
		nilAuditor.Record(context.Background(), 1, history.ActionLogout, "")
	})
}
