package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/history"
)

type HistoryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewHistoryRepository(pool *pgxpool.Pool, log *slog.Logger) *HistoryRepository {
	return &HistoryRepository{
		pool: pool,
		log:  log.With("component", "history_repository"),
	}
}

func (r *HistoryRepository) Create(ctx context.Context, e history.Entry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO history (user_id, action, details, ip_address) VALUES ($1, $2, $3, $4)`,
		e.UserID, string(e.Action), nullable(e.Details), nullable(e.IPAddress))
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, userID, limit, offset int) ([]history.Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM history WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, action, COALESCE(details, ''), COALESCE(ip_address, ''), timestamp
		FROM history
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		r.log.Error("failed to list history", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]history.Entry, 0, limit)
	for rows.Next() {
		var e history.Entry
		var action string
		if err := rows.Scan(&e.ID, &e.UserID, &action, &e.Details, &e.IPAddress, &e.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan history: %w", err)
		}
		e.Action = history.Action(action)
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}
