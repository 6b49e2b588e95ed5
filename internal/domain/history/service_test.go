package history

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, e Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, userID, limit, offset int) ([]Entry, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]Entry), args.Int(1), args.Error(2)
}

func TestService_Record(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		return e.UserID == 1 && e.Action == ActionLogin && len([]rune(e.Details)) == maxDetails
	})).Return(nil)

	err := svc.Record(context.Background(), Entry{
		UserID:    1,
		Action:    ActionLogin,
		Details:   strings.Repeat("д", 300),
		IPAddress: "10.0.0.1",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Record_RequiresUserAndAction(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	assert.Error(t, svc.Record(context.Background(), Entry{Action: ActionLogin}))
	assert.Error(t, svc.Record(context.Background(), Entry{UserID: 1}))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_List_Limits(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: DefaultLimit, wantOffset: 0},
		{name: "clamped", limit: 1000, offset: -5, wantLimit: MaxLimit, wantOffset: 0},
		{name: "explicit", limit: 10, offset: 20, wantLimit: 10, wantOffset: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, slog.Default())

			repo.On("List", mock.Anything, 1, tt.wantLimit, tt.wantOffset).Return(nil, 0, nil)

			page, err := svc.List(context.Background(), 1, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.NotNil(t, page.Entries)
			assert.Equal(t, tt.wantLimit, page.Limit)
			repo.AssertExpectations(t)
		})
	}
}
