package credential

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("password not found")
	ErrInvalidData      = errors.New("invalid password data")
	ErrCategoryNotFound = errors.New("category not found")
)
