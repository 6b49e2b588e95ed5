package category

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"windkey/internal/utils/validate"
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Category, error)
	Create(ctx context.Context, userID int, req Request) (Category, error)
	Update(ctx context.Context, userID, id int, req Request) (Category, error)
	Delete(ctx context.Context, userID, id int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "category_service")),
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Category, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, userID int, req Request) (Category, error) {
	req, err := normalize(req)
	if err != nil {
		return Category{}, err
	}

	c := Category{UserID: userID, Name: req.Name, Icon: req.Icon, Color: req.Color}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	c.ID = id

	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, id int, req Request) (Category, error) {
	req, err := normalize(req)
	if err != nil {
		return Category{}, err
	}

	c := Category{ID: id, UserID: userID, Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := s.repo.Update(ctx, c); err != nil {
		return Category{}, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.log.Debug("category deleted", "user_id", userID, "id", id)
	return nil
}

func normalize(req Request) (Request, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %s", ErrInvalidData, err)
	}
	return req, nil
}
