package user

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/pquerna/otp/totp"
)

const qrSize = 200

// Enrollment is a freshly generated TOTP secret with its provisioning data.
type Enrollment struct {
	Secret string
	URL    string
	QRCode string
}

// OTP generates and checks time-based one-time codes.
type OTP interface {
	Generate(accountName string) (Enrollment, error)
	Validate(code, secret string) bool
}

type TOTP struct {
	issuer string
}

func NewTOTP(issuer string) *TOTP {
	return &TOTP{issuer: issuer}
}

// Generate creates a secret for accountName and renders the otpauth URL as a
// PNG QR code data URI.
func (t *TOTP) Generate(accountName string) (Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountName,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	img, err := key.Image(qrSize, qrSize)
	if err != nil {
		return Enrollment{}, fmt.Errorf("render qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Enrollment{}, fmt.Errorf("encode qr code: %w", err)
	}

	return Enrollment{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (t *TOTP) Validate(code, secret string) bool {
	return totp.Validate(code, secret)
}
