package credential

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c Credential) (Credential, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(Credential), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID int, filter ListFilter) ([]Credential, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Credential), args.Error(1)
}

func (m *MockRepository) Find(ctx context.Context, userID, id int) (Credential, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(Credential), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, c Credential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, id int) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRepository) ListEncrypted(ctx context.Context, userID int) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockOwnership struct {
	mock.Mock
}

func (m *MockOwnership) Owns(ctx context.Context, userID, categoryID int) (bool, error) {
	args := m.Called(ctx, userID, categoryID)
	return args.Bool(0), args.Error(1)
}

// prefixEncryptor is reversible and deterministic
type prefixEncryptor struct{}

func (prefixEncryptor) Encrypt(plaintext []byte) (string, error) {
	return "enc:" + string(plaintext), nil
}

func (prefixEncryptor) Decrypt(ciphertext string) ([]byte, error) {
	if !strings.HasPrefix(ciphertext, "enc:") {
		return nil, errors.New("bad ciphertext")
	}
	return []byte(strings.TrimPrefix(ciphertext, "enc:")), nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newTestService(repo *MockRepository, owner *MockOwnership) *Service {
	return NewService(repo, owner, prefixEncryptor{}, slog.Default())
}

func TestService_Create(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	owner := new(MockOwnership)
	svc := newTestService(repo, owner)

	owner.On("Owns", mock.Anything, 1, 3).Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c Credential) bool {
		return c.UserID == 1 &&
			c.Title == "GitHub" &&
			c.EncryptedPassword == "enc:hunter2" &&
			c.Password == "" &&
			c.CategoryID != nil && *c.CategoryID == 3
	})).Return(Credential{ID: 10, UserID: 1, Title: "GitHub", CreatedAt: stamp, UpdatedAt: stamp}, nil)

	created, err := svc.Create(context.Background(), 1, CreateRequest{
		Title:      "  GitHub ",
		Username:   "octocat",
		Password:   "hunter2",
		CategoryID: intPtr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.Equal(t, stamp, created.CreatedAt)
	assert.Equal(t, stamp, created.UpdatedAt)
	repo.AssertExpectations(t)
	owner.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{name: "missing title", req: CreateRequest{Password: "x"}},
		{name: "blank title", req: CreateRequest{Title: "   ", Password: "x"}},
		{name: "missing password", req: CreateRequest{Title: "GitHub"}},
		{name: "title too long", req: CreateRequest{Title: strings.Repeat("t", 101), Password: "x"}},
		{name: "url too long", req: CreateRequest{Title: "t", Password: "x", URL: strings.Repeat("u", 501)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := newTestService(repo, new(MockOwnership))

			_, err := svc.Create(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidData)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_ForeignCategory(t *testing.T) {
	repo := new(MockRepository)
	owner := new(MockOwnership)
	svc := newTestService(repo, owner)

	owner.On("Owns", mock.Anything, 1, 99).Return(false, nil)

	_, err := svc.Create(context.Background(), 1, CreateRequest{Title: "t", Password: "p", CategoryID: intPtr(99)})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestService_Find_Decrypts(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockOwnership))

	repo.On("Find", mock.Anything, 1, 5).Return(Credential{ID: 5, Title: "t", EncryptedPassword: "enc:secret"}, nil)

	c, err := svc.Find(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Password)
}

func TestService_Find_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockOwnership))

	repo.On("Find", mock.Anything, 1, 5).Return(Credential{}, ErrNotFound)

	_, err := svc.Find(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_List_StripsPasswords(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockOwnership))

	repo.On("List", mock.Anything, 1, ListFilter{Search: "git"}).
		Return([]Credential{{ID: 1, Title: "GitHub", Password: "leak"}}, nil)

	items, err := svc.List(context.Background(), 1, ListFilter{Search: " git "})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Password)
}

func TestService_Update_Partial(t *testing.T) {
	repo := new(MockRepository)
	owner := new(MockOwnership)
	svc := newTestService(repo, owner)

	existing := Credential{
		ID:                5,
		UserID:            1,
		Title:             "Old",
		Username:          "me",
		EncryptedPassword: "enc:old",
		CategoryID:        intPtr(2),
	}
	repo.On("Find", mock.Anything, 1, 5).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c Credential) bool {
		return c.Title == "New" &&
			c.Username == "me" &&
			c.EncryptedPassword == "enc:fresh" &&
			c.CategoryID == nil
	})).Return(nil)

	updated, err := svc.Update(context.Background(), 1, 5, UpdateRequest{
		Title:      strPtr("New"),
		Password:   strPtr("fresh"),
		CategoryID: intPtr(0),
	})

	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Empty(t, updated.Password)
	owner.AssertNotCalled(t, "Owns", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_Update_RejectsEmptyFields(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockOwnership))

	_, err := svc.Update(context.Background(), 1, 5, UpdateRequest{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = svc.Update(context.Background(), 1, 5, UpdateRequest{Password: strPtr("")})
	assert.ErrorIs(t, err, ErrInvalidData)

	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockOwnership))

	repo.On("Delete", mock.Anything, 1, 5).Return(nil)
	repo.On("Delete", mock.Anything, 1, 6).Return(ErrNotFound)

	assert.NoError(t, svc.Delete(context.Background(), 1, 5))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 6), ErrNotFound)
}

func TestService_Secrets(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockOwnership))

	repo.On("ListEncrypted", mock.Anything, 1).Return([]string{"enc:a", "enc:b"}, nil)

	secrets, err := svc.Secrets(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, secrets)
}
