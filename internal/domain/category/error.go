package category

import "errors"

var (
	ErrNotFound      = errors.New("category not found")
	ErrInvalidData   = errors.New("invalid category data")
	ErrAlreadyExists = errors.New("category already exists")
)
