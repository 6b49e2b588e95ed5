package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"windkey/internal/utils/validate"
)

type Servicer interface {
	List(ctx context.Context, userID int, filter ListFilter) ([]Credential, error)
	Find(ctx context.Context, userID, id int) (Credential, error)
	Create(ctx context.Context, userID int, req CreateRequest) (Credential, error)
	Update(ctx context.Context, userID, id int, req UpdateRequest) (Credential, error)
	Delete(ctx context.Context, userID, id int) error
	Secrets(ctx context.Context, userID int) ([]string, error)
}

// Service defines the business logic for stored passwords
type Service struct {
	repo       Repository
	categories CategoryOwnership
	enc        Encryptor
	log        *slog.Logger
}

func NewService(repo Repository, categories CategoryOwnership, enc Encryptor, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		enc:        enc,
		log:        log.With(slog.String("component", "credential_service")),
	}
}

// List returns credentials without their passwords
func (s *Service) List(ctx context.Context, userID int, filter ListFilter) ([]Credential, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	items, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.log.Error("failed to list passwords", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list passwords: %w", err)
	}

	for i := range items {
		items[i].Password = ""
	}
	return items, nil
}

// Find returns a credential with its password decrypted
func (s *Service) Find(ctx context.Context, userID, id int) (Credential, error) {
	c, err := s.repo.Find(ctx, userID, id)
	if err != nil {
		return Credential{}, err
	}

	plain, err := s.enc.Decrypt(c.EncryptedPassword)
	if err != nil {
		s.log.Error("failed to decrypt password", "user_id", userID, "id", id, "error", err)
		return Credential{}, fmt.Errorf("decrypt password: %w", err)
	}
	c.Password = string(plain)

	return c, nil
}

func (s *Service) Create(ctx context.Context, userID int, req CreateRequest) (Credential, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return Credential{}, fmt.Errorf("%w: %s", ErrInvalidData, err)
	}

	if err := s.checkCategory(ctx, userID, req.CategoryID); err != nil {
		return Credential{}, err
	}

	encrypted, err := s.enc.Encrypt([]byte(req.Password))
	if err != nil {
		return Credential{}, fmt.Errorf("encrypt password: %w", err)
	}

	c := Credential{
		UserID:            userID,
		Title:             req.Title,
		Username:          req.Username,
		EncryptedPassword: encrypted,
		URL:               req.URL,
		Notes:             req.Notes,
		CategoryID:        req.CategoryID,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return Credential{}, fmt.Errorf("create password: %w", err)
	}

	s.log.Debug("password created", "user_id", userID, "id", created.ID)
	return created, nil
}

// Update applies the non-nil fields of req to an existing credential
func (s *Service) Update(ctx context.Context, userID, id int, req UpdateRequest) (Credential, error) {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Title != nil && *req.Title == "" {
		return Credential{}, fmt.Errorf("%w: title must not be empty", ErrInvalidData)
	}
	if req.Password != nil && *req.Password == "" {
		return Credential{}, fmt.Errorf("%w: password must not be empty", ErrInvalidData)
	}
	if err := validate.Struct(req); err != nil {
		return Credential{}, fmt.Errorf("%w: %s", ErrInvalidData, err)
	}

	c, err := s.repo.Find(ctx, userID, id)
	if err != nil {
		return Credential{}, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Username != nil {
		c.Username = *req.Username
	}
	if req.URL != nil {
		c.URL = *req.URL
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			c.CategoryID = nil
		} else {
			if err := s.checkCategory(ctx, userID, req.CategoryID); err != nil {
				return Credential{}, err
			}
			c.CategoryID = req.CategoryID
		}
	}
	if req.Password != nil {
		encrypted, err := s.enc.Encrypt([]byte(*req.Password))
		if err != nil {
			return Credential{}, fmt.Errorf("encrypt password: %w", err)
		}
		c.EncryptedPassword = encrypted
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Credential{}, fmt.Errorf("update password: %w", err)
	}

	c.Password = ""
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete password: %w", err)
	}
	return nil
}

// Secrets decrypts every stored password of a user
func (s *Service) Secrets(ctx context.Context, userID int) ([]string, error) {
	encrypted, err := s.repo.ListEncrypted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list passwords: %w", err)
	}

	secrets := make([]string, 0, len(encrypted))
	for _, e := range encrypted {
		plain, err := s.enc.Decrypt(e)
		if err != nil {
			return nil, fmt.Errorf("decrypt password: %w", err)
		}
		secrets = append(secrets, string(plain))
	}
	return secrets, nil
}

func (s *Service) checkCategory(ctx context.Context, userID int, categoryID *int) error {
	if categoryID == nil {
		return nil
	}

	ok, err := s.categories.Owns(ctx, userID, *categoryID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}
