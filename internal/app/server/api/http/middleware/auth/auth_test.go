package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/session"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockSession) Refresh(ctx context.Context, token string) (string, int, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Int(1), args.Error(2)
}

func (m *MockSession) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type whoamiOutput struct {
	Body struct {
		UserID int    `json:"user_id"`
		Token  string `json:"token"`
	}
}

func setupAPI(t *testing.T, svc session.Servicer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)

	mw := New(svc, slog.Default())
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{mw.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		id, _ := GetUserID(ctx)
		out := &whoamiOutput{}
		out.Body.UserID = id
		out.Body.Token = SessionToken(ctx)
		return out, nil
	})

	return api
}

func TestAuth_Middleware(t *testing.T) {
	tests := []struct {
		name       string
		headers    []any
		setup      func(m *MockSession)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:    "bearer token",
			headers: []any{"Authorization: Bearer good"},
			setup: func(m *MockSession) {
				m.On("Validate", mock.Anything, "good").Return(7, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"user_id":7`,
		},
		{
			name:    "session cookie",
			headers: []any{"Cookie: session=cookie-token"},
			setup: func(m *MockSession) {
				m.On("Validate", mock.Anything, "cookie-token").Return(3, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"token":"cookie-token"`,
		},
		{
			name:    "expired session",
			headers: []any{"Authorization: Bearer stale"},
			setup: func(m *MockSession) {
				m.On("Validate", mock.Anything, "stale").Return(0, session.ErrInvalidSession)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSession)
			if tt.setup != nil {
				tt.setup(svc)
			}

			resp := setupAPI(t, svc).Get("/whoami", tt.headers...)

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.token, token, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}

func TestToken_PrefersHeader(t *testing.T) {
	assert.Equal(t, "h", Token("Bearer h", "c"))
	assert.Equal(t, "c", Token("", "c"))
	assert.Equal(t, "", Token("Basic x", ""))
}

func TestWithUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, 42, id)
}
