package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/credential"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCredentialRepository(pool *pgxpool.Pool, log *slog.Logger) *CredentialRepository {
	return &CredentialRepository{
		pool: pool,
		log:  log.With("component", "credential_repository"),
	}
}

const credentialColumns = `
	p.id, p.user_id, p.title, COALESCE(p.username, ''), p.encrypted_password,
	COALESCE(p.url, ''), COALESCE(p.notes, ''), p.category_id, COALESCE(c.name, ''),
	p.created_at, p.updated_at`

// Create сохраняет запись и возвращает её с id и временем создания из базы
func (r *CredentialRepository) Create(ctx context.Context, c credential.Credential) (credential.Credential, error) {
	const query = `
		INSERT INTO passwords (user_id, category_id, title, username, encrypted_password, url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.UserID, c.CategoryID, c.Title, nullable(c.Username), c.EncryptedPassword,
		nullable(c.URL), nullable(c.Notes),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create password", "user_id", c.UserID, "error", err)
		return credential.Credential{}, fmt.Errorf("create password: %w", err)
	}
	return c, nil
}

func (r *CredentialRepository) List(ctx context.Context, userID int, filter credential.ListFilter) ([]credential.Credential, error) {
	query := `SELECT` + credentialColumns + `
		FROM passwords p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.user_id = $1`

	args := []interface{}{userID}
	argIndex := 2

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.username ILIKE $%d OR p.url ILIKE $%d)",
			argIndex, argIndex, argIndex)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIndex++
	}

	if filter.CategoryID > 0 {
		query += fmt.Sprintf(" AND p.category_id = $%d", argIndex)
		args = append(args, filter.CategoryID)
	}

	query += " ORDER BY p.updated_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list passwords", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list passwords: %w", err)
	}
	defer rows.Close()

	items := make([]credential.Credential, 0)
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan password: %w", err)
		}
		items = append(items, c)
	}

	return items, rows.Err()
}

func (r *CredentialRepository) Find(ctx context.Context, userID, id int) (credential.Credential, error) {
	query := `SELECT` + credentialColumns + `
		FROM passwords p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.user_id = $2`

	c, err := scanCredential(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.Credential{}, credential.ErrNotFound
		}
		r.log.Error("failed to get password", "id", id, "user_id", userID, "error", err)
		return credential.Credential{}, fmt.Errorf("get password: %w", err)
	}
	return c, nil
}

func (r *CredentialRepository) Update(ctx context.Context, c credential.Credential) error {
	const query = `
		UPDATE passwords
		SET title = $1, username = $2, encrypted_password = $3, url = $4, notes = $5,
			category_id = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8`

	tag, err := r.pool.Exec(ctx, query,
		c.Title, nullable(c.Username), c.EncryptedPassword, nullable(c.URL), nullable(c.Notes),
		c.CategoryID, c.ID, c.UserID)
	if err != nil {
		r.log.Error("failed to update password", "id", c.ID, "user_id", c.UserID, "error", err)
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return credential.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, userID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM passwords WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("failed to delete password", "id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return credential.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) ListEncrypted(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT encrypted_password FROM passwords WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list encrypted passwords: %w", err)
	}

	secrets, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect encrypted passwords: %w", err)
	}
	return secrets, nil
}

func scanCredential(row pgx.Row) (credential.Credential, error) {
	var c credential.Credential
	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Username, &c.EncryptedPassword,
		&c.URL, &c.Notes, &c.CategoryID, &c.CategoryName,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
