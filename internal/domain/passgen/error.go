package passgen

import "errors"

var (
	ErrNoCharacterClassSelected = errors.New("please select at least one character type")
	ErrInvalidLength            = errors.New("password length must be between 4 and 128")
)
