package credential

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
	"windkey/internal/domain/credential"
	"windkey/internal/domain/history"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int, filter credential.ListFilter) ([]credential.Credential, error) {
	args := m.Called(ctx, userID, filter)
	if v := args.Get(0); v != nil {
		return v.([]credential.Credential), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Find(ctx context.Context, userID, id int) (credential.Credential, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(credential.Credential), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, req credential.CreateRequest) (credential.Credential, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(credential.Credential), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID, id int, req credential.UpdateRequest) (credential.Credential, error) {
	args := m.Called(ctx, userID, id, req)
	return args.Get(0).(credential.Credential), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID, id int) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockService) Secrets(ctx context.Context, userID int) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e history.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newHandler(svc *MockService) (*Handler, *MockRecorder) {
	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewHandler(svc, audit.New(rec, slog.Default()), slog.Default(), huma.Middlewares{}), rec
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se))
	return se.GetStatus()
}

func TestHandler_RequiresUser(t *testing.T) {
	h, _ := newHandler(new(MockService))
	ctx := context.Background()

	_, err := h.list(ctx, &listInput{})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = h.find(ctx, &idInput{ID: 1})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = h.create(ctx, &createInput{})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = h.update(ctx, &updateInput{ID: 1})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = h.delete(ctx, &idInput{ID: 1})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestHandler_list(t *testing.T) {
	svc := new(MockService)
	h, _ := newHandler(svc)
	ctx := auth.WithUserID(context.Background(), 3)

	svc.On("List", mock.Anything, 3, credential.ListFilter{Search: "git", CategoryID: 2}).
		Return([]credential.Credential{{ID: 1, Title: "GitHub"}}, nil)

	out, err := h.list(ctx, &listInput{Search: "git", CategoryID: 2})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, "GitHub", out.Body[0].Title)
}

func TestHandler_find(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "found"},
		{name: "other user's entry", svcErr: credential.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "decrypt failure", svcErr: errors.New("cipher: message authentication failed"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h, rec := newHandler(svc)
			ctx := auth.WithUserID(context.Background(), 3)

			svc.On("Find", mock.Anything, 3, 9).Return(credential.Credential{ID: 9, Title: "Mail", Password: "hunter2"}, tt.svcErr)

			out, err := h.find(ctx, &idInput{ID: 9})

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hunter2", out.Body.Password)
			rec.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e history.Entry) bool {
				return e.Action == history.ActionPasswordViewed && e.UserID == 3
			}))
		})
	}
}

func TestHandler_create(t *testing.T) {
	t.Run("hides password in response", func(t *testing.T) {
		svc := new(MockService)
		h, _ := newHandler(svc)
		ctx := auth.WithUserID(context.Background(), 3)

		req := credential.CreateRequest{Title: "Mail", Password: "hunter2"}
		svc.On("Create", mock.Anything, 3, req).Return(credential.Credential{ID: 5, Title: "Mail", Password: "hunter2"}, nil)

		out, err := h.create(ctx, &createInput{Body: req})

		require.NoError(t, err)
		assert.Equal(t, 5, out.Body.ID)
		assert.Empty(t, out.Body.Password)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(MockService)
		h, _ := newHandler(svc)
		ctx := auth.WithUserID(context.Background(), 3)

		svc.On("Create", mock.Anything, 3, mock.Anything).
			Return(credential.Credential{}, fmt.Errorf("%w: title is required", credential.ErrInvalidData))

		_, err := h.create(ctx, &createInput{})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		assert.Equal(t, "title is required", err.Error())
	})

	t.Run("foreign category", func(t *testing.T) {
		svc := new(MockService)
		h, _ := newHandler(svc)
		ctx := auth.WithUserID(context.Background(), 3)

		svc.On("Create", mock.Anything, 3, mock.Anything).Return(credential.Credential{}, credential.ErrCategoryNotFound)

		_, err := h.create(ctx, &createInput{})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})
}

func TestHandler_update(t *testing.T) {
	svc := new(MockService)
	h, _ := newHandler(svc)
	ctx := auth.WithUserID(context.Background(), 3)

	title := "Renamed"
	req := credential.UpdateRequest{Title: &title}
	svc.On("Update", mock.Anything, 3, 9, req).Return(credential.Credential{ID: 9, Title: title}, nil)

	out, err := h.update(ctx, &updateInput{ID: 9, Body: req})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Body.Title)
}

func TestHandler_delete(t *testing.T) {
	svc := new(MockService)
	h, _ := newHandler(svc)
	ctx := auth.WithUserID(context.Background(), 3)

	svc.On("Delete", mock.Anything, 3, 9).Return(nil).Once()
	svc.On("Delete", mock.Anything, 3, 10).Return(credential.ErrNotFound).Once()

	out, err := h.delete(ctx, &idInput{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, "Password deleted successfully", out.Body.Message)

	_, err = h.delete(ctx, &idInput{ID: 10})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
