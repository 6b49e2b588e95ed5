package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/category"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCategoryRepository(pool *pgxpool.Pool, log *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		pool: pool,
		log:  log.With("component", "category_repository"),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c category.Category) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (user_id, name, icon, color) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.UserID, c.Name, nullable(c.Icon), nullable(c.Color)).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, category.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

func (r *CategoryRepository) List(ctx context.Context, userID int) ([]category.Category, error) {
	const query = `
		SELECT c.id, c.user_id, c.name, COALESCE(c.icon, ''), COALESCE(c.color, ''),
		       COUNT(p.id), c.created_at
		FROM categories c
		LEFT JOIN passwords p ON p.category_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list categories", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := make([]category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.PasswordCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c category.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $1, icon = $2, color = $3 WHERE id = $4 AND user_id = $5`,
		c.Name, nullable(c.Icon), nullable(c.Color), c.ID, c.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrAlreadyExists
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

// Delete полагается на ON DELETE SET NULL у passwords.category_id
func (r *CategoryRepository) Delete(ctx context.Context, userID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Owns(ctx context.Context, userID, categoryID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("check category owner: %w", err)
	}
	return exists, nil
}
