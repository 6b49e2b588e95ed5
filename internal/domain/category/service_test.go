package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c Category) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID int) ([]Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Category), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, c Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, id int) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "valid", req: Request{Name: " Work ", Icon: "briefcase", Color: "#336699"}},
		{name: "empty name", req: Request{Name: "  "}, wantErr: ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, slog.Default())

			if tt.wantErr == nil {
				repo.On("Create", mock.Anything, Category{UserID: 1, Name: "Work", Icon: "briefcase", Color: "#336699"}).Return(4, nil)
			}

			c, err := svc.Create(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, c.ID)
			assert.Equal(t, "Work", c.Name)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("Update", mock.Anything, mock.Anything).Return(ErrNotFound)

	_, err := svc.Update(context.Background(), 1, 9, Request{Name: "Home"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("List", mock.Anything, 1).Return([]Category{{ID: 1, Name: "Work", PasswordCount: 3}}, nil)

	items, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].PasswordCount)
}

func TestService_List_Error(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("List", mock.Anything, 1).Return(nil, errors.New("database error"))

	_, err := svc.List(context.Background(), 1)
	assert.ErrorContains(t, err, "database error")
}

func TestService_Delete(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("Delete", mock.Anything, 1, 2).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 1, 2))
	repo.AssertExpectations(t)
}
