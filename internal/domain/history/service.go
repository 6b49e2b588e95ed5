package history

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	maxDetails   = 255
)

// Recorder appends entries to a user's activity log.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type Servicer interface {
	Recorder
	List(ctx context.Context, userID, limit, offset int) (Page, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "history_service")),
	}
}

func (s *Service) Record(ctx context.Context, e Entry) error {
	if e.UserID == 0 || e.Action == "" {
		return fmt.Errorf("history entry requires user and action")
	}
	if r := []rune(e.Details); len(r) > maxDetails {
		e.Details = string(r[:maxDetails])
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// List returns the newest entries first
func (s *Service) List(ctx context.Context, userID, limit, offset int) (Page, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := s.repo.List(ctx, userID, limit, offset)
	if err != nil {
		return Page{}, fmt.Errorf("list history: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}

	return Page{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}
