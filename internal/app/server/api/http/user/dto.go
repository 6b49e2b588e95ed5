package user

import "windkey/internal/domain/user"

type registerInput struct {
	Body user.BaseRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	Message         string `json:"message" example:"User registered successfully"`
	UserID          int    `json:"user_id"`
	TwoFactorSecret string `json:"two_factor_secret" doc:"Base32 TOTP secret"`
	OTPURL          string `json:"otp_url" doc:"otpauth:// URL"`
	QRCode          string `json:"qr_code" doc:"data:image/png;base64 QR code of otp_url"`
}

type loginInput struct {
	Body user.BaseRequest
}

type loginOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      LoginResponse
}

// LoginResponse либо просит второй фактор, либо сразу выдаёт сессию
type LoginResponse struct {
	Requires2FA    bool         `json:"requires2FA"`
	TemporaryToken string       `json:"temporaryToken,omitempty"`
	Token          string       `json:"token,omitempty"`
	User           *user.Public `json:"user,omitempty"`
}

type verifyInput struct {
	Authorization string `header:"Authorization" doc:"Bearer временный токен из /api/login"`
	Body          struct {
		Code string `json:"two_factor_code" pattern:"^[0-9]{6}$" doc:"6-значный TOTP код"`
	}
}

type sessionOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      SessionResponse
}

type SessionResponse struct {
	Token string       `json:"token"`
	User  *user.Public `json:"user"`
}

// tokenInput для ручек, которые сами разбирают токен и не закрыты auth middleware
type tokenInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"session"`
}

type checkAuthOutput struct {
	Body CheckAuthResponse
}

type CheckAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *user.Public `json:"user,omitempty"`
}

type logoutOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      MessageResponse
}

type MessageResponse struct {
	Message string `json:"message"`
}
