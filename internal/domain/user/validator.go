package user

import (
	"fmt"
	"unicode"

	"windkey/internal/utils/validate"
)

const (
	MaxEmailLen    = 120
	MinPasswordLen = 8
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type PasswordValidator struct {
	requireSpecialChar bool
	requireDigit       bool
	requireUpper       bool
	requireLower       bool
}

// NewPasswordValidator создает новый валидатор
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		requireSpecialChar: true,
		requireDigit:       true,
		requireUpper:       true,
		requireLower:       true,
	}
}

// ValidateRegister валидирует данные для регистрации
func (v *PasswordValidator) ValidateRegister(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateEmail валидирует email
func (v *PasswordValidator) ValidateEmail(email string) error {
	return validate.Var("email", email, fmt.Sprintf("required,max=%d,email", MaxEmailLen))
}

// ValidatePassword валидирует мастер-пароль
func (v *PasswordValidator) ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if v.requireLower && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if v.requireUpper && !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if v.requireDigit && !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	if v.requireSpecialChar && !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
