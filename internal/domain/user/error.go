package user

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrInvalidAuth    = errors.New("invalid credentials")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidCode    = errors.New("invalid 2FA code")
	ErrNoSecondFactor = errors.New("two-factor authentication is not enabled")
)

type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
