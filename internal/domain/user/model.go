package user

import "time"

type User struct {
	ID              int
	Email           string
	PasswordHash    string
	TwoFactorSecret string
	CreatedAt       time.Time
}

// RequiresSecondFactor is true once a TOTP secret is enrolled.
func (u User) RequiresSecondFactor() bool {
	return u.TwoFactorSecret != ""
}

// Public is the user representation returned to clients.
type Public struct {
	ID    int    `json:"id" example:"1"`
	Email string `json:"email" example:"user@example.com"`
}

func (u User) Public() *Public {
	return &Public{ID: u.ID, Email: u.Email}
}

// Registration is the result of a successful sign-up.
type Registration struct {
	UserID          int
	TwoFactorSecret string
	OTPURL          string
	QRCode          string
}
