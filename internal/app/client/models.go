package client

import (
	"windkey/internal/domain/passgen"
	"windkey/internal/domain/user"
)

// Registration ответ сервера на регистрацию: данные для настройки TOTP
type Registration struct {
	Message         string `json:"message"`
	UserID          int    `json:"user_id"`
	TwoFactorSecret string `json:"two_factor_secret"`
	OTPURL          string `json:"otp_url"`
	QRCode          string `json:"qr_code"`
}

// GenerateResult сгенерированный сервером пароль и его оценка
type GenerateResult struct {
	Password string                 `json:"password"`
	Length   int                    `json:"length"`
	Strength passgen.StrengthResult `json:"strength"`
}

type loginResponse struct {
	Requires2FA    bool         `json:"requires2FA"`
	TemporaryToken string       `json:"temporaryToken"`
	Token          string       `json:"token"`
	User           *user.Public `json:"user"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *user.Public `json:"user"`
}

type checkAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *user.Public `json:"user"`
}
