package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValidator_ValidateEmail(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{name: "valid email", email: "user@example.com"},
		{name: "valid with plus", email: "user+vault@example.com"},
		{name: "empty", email: "", wantErr: true, expectedErr: "email is required"},
		{name: "missing at", email: "user.example.com", wantErr: true, expectedErr: "email must be a valid email"},
		{
			name:        "too long",
			email:       strings.Repeat("a", 115) + "@x.com",
			wantErr:     true,
			expectedErr: "email must be at most 120 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name        string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{
			name:        "seven characters",
			password:    "Abc123!",
			wantErr:     true,
			expectedErr: "password must be at least 8 characters",
		},
		{
			name:        "no uppercase",
			password:    "abc123!@",
			wantErr:     true,
			expectedErr: "password must contain at least one uppercase letter",
		},
		{
			name:        "no lowercase",
			password:    "ABC123!@",
			wantErr:     true,
			expectedErr: "password must contain at least one lowercase letter",
		},
		{
			name:        "no digit",
			password:    "Abcdef!@",
			wantErr:     true,
			expectedErr: "password must contain at least one digit",
		},
		{
			name:        "no special char",
			password:    "Abcdef12",
			wantErr:     true,
			expectedErr: "password must contain at least one special character",
		},
		{
			name:     "strong with multiple chars",
			password: "P@ssw0rd123!",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPasswordValidator_ValidateRegister(t *testing.T) {
	validator := NewPasswordValidator()

	tests := []struct {
		name           string
		email          string
		password       string
		wantErr        bool
		expectedErrMsg string
	}{
		{
			name:     "valid registration",
			email:    "user@example.com",
			password: "P@ssw0rd123!",
		},
		{
			name:           "invalid email",
			email:          "user",
			password:       "P@ssw0rd123!",
			wantErr:        true,
			expectedErrMsg: "email validation failed",
		},
		{
			name:           "invalid password",
			email:          "user@example.com",
			password:       "abc",
			wantErr:        true,
			expectedErrMsg: "password validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRegister(tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErrMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewPasswordValidator(t *testing.T) {
	v := NewPasswordValidator()
	assert.True(t, v.requireSpecialChar)
	assert.True(t, v.requireDigit)
	assert.True(t, v.requireUpper)
	assert.True(t, v.requireLower)
}
