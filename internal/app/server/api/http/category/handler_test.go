package category

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"windkey/internal/app/server/api/http/audit"
	"windkey/internal/app/server/api/http/middleware/auth"
	"windkey/internal/domain/category"
	"windkey/internal/domain/history"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int) ([]category.Category, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]category.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, req category.Request) (category.Category, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(category.Category), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID, id int, req category.Request) (category.Category, error) {
	args := m.Called(ctx, userID, id, req)
	return args.Get(0).(category.Category), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID, id int) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e history.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newHandler(svc *MockService) *Handler {
	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewHandler(svc, audit.New(rec, slog.Default()), slog.Default(), huma.Middlewares{})
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se))
	return se.GetStatus()
}

func TestHandler_list(t *testing.T) {
	svc := new(MockService)
	h := newHandler(svc)

	_, err := h.list(context.Background(), nil)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	svc.On("List", mock.Anything, 1).Return([]category.Category{{ID: 1, Name: "Work", PasswordCount: 3}}, nil)

	out, err := h.list(auth.WithUserID(context.Background(), 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Body[0].PasswordCount)
}

func TestHandler_create(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "created"},
		{name: "duplicate", svcErr: category.ErrAlreadyExists, wantStatus: http.StatusConflict},
		{name: "invalid", svcErr: fmt.Errorf("%w: name is required", category.ErrInvalidData), wantStatus: http.StatusBadRequest},
		{name: "storage failure", svcErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := newHandler(svc)
			req := category.Request{Name: "Work"}

			svc.On("Create", mock.Anything, 1, req).Return(category.Category{ID: 4, Name: "Work"}, tt.svcErr)

			out, err := h.create(auth.WithUserID(context.Background(), 1), &createInput{Body: req})

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, out.Body.ID)
		})
	}
}

func TestHandler_updateAndDelete(t *testing.T) {
	svc := new(MockService)
	h := newHandler(svc)
	ctx := auth.WithUserID(context.Background(), 1)

	req := category.Request{Name: "Personal"}
	svc.On("Update", mock.Anything, 1, 4, req).Return(category.Category{ID: 4, Name: "Personal"}, nil)
	svc.On("Delete", mock.Anything, 1, 4).Return(nil)
	svc.On("Delete", mock.Anything, 1, 5).Return(category.ErrNotFound)

	out, err := h.update(ctx, &updateInput{ID: 4, Body: req})
	require.NoError(t, err)
	assert.Equal(t, "Personal", out.Body.Name)

	msg, err := h.delete(ctx, &deleteInput{ID: 4})
	require.NoError(t, err)
	assert.Equal(t, "Category deleted successfully", msg.Body.Message)

	_, err = h.delete(ctx, &deleteInput{ID: 5})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
