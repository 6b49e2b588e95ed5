package session

import "errors"

var (
	ErrInvalidSession   = errors.New("invalid session")
	ErrRefreshExpired   = errors.New("session can no longer be refreshed")
	ErrInvalidTempToken = errors.New("invalid or expired temporary token")
	ErrTooManyAttempts  = errors.New("too many second factor attempts")
)
