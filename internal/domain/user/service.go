package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, email, password string) (Registration, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	VerifyCode(ctx context.Context, userID int, code string) error
	Find(ctx context.Context, userID int) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	otp       OTP
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, otp OTP, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		otp:       otp,
		log:       log.With(slog.String("component", "user_service")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and enrolls a TOTP secret for it.
func (s *Service) Register(ctx context.Context, email, password string) (Registration, error) {
	email = normalizeEmail(email)
	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("validation failed", "email", email, "error", err)
		return Registration{}, &DomainError{Err: ErrInvalidInput, Message: err.Error(), Code: "invalid_input"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Registration{}, &DomainError{Err: ErrInvalidInput, Message: "password is too long", Code: "invalid_input"}
		}
		return Registration{}, fmt.Errorf("hash password: %w", err)
	}

	enrollment, err := s.otp.Generate(email)
	if err != nil {
		return Registration{}, fmt.Errorf("enroll second factor: %w", err)
	}

	userID, err := s.repo.Create(ctx, email, string(hash), enrollment.Secret)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Registration{}, &DomainError{Err: ErrEmailTaken, Message: "Email already registered", Code: "email_taken"}
		}
		return Registration{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", slog.Int("user_id", userID))

	return Registration{
		UserID:          userID,
		TwoFactorSecret: enrollment.Secret,
		OTPURL:          enrollment.URL,
		QRCode:          enrollment.QRCode,
	}, nil
}

// Authenticate checks the primary credentials only. On a wrong password the
// returned User still carries ID and Email so the attempt can be audited.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if err := s.validator.ValidateEmail(email); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{ID: u.ID, Email: u.Email}, ErrInvalidAuth
	}

	return u, nil
}

func (s *Service) VerifyCode(ctx context.Context, userID int, code string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !u.RequiresSecondFactor() {
		return ErrNoSecondFactor
	}

	if !s.otp.Validate(code, u.TwoFactorSecret) {
		return ErrInvalidCode
	}

	return nil
}

func (s *Service) Find(ctx context.Context, userID int) (User, error) {
	return s.repo.FindByID(ctx, userID)
}
