package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/litshelf/litshelf/internal/model"
)

// Common errors for novelist repository operations.
var (
	ErrNovelistNotFound = errors.New("novelist not found")
	ErrNovelistExists   = errors.New("novelist already exists")
)

// CreateNovelist inserts a new novelist and fills in the generated
// id and timestamps.
func (r *Repository) CreateNovelist(ctx context.Context, novelist *model.Novelist) error {
	query := `
		INSERT INTO novelists (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, novelist.Name).Scan(
		&novelist.ID,
		&novelist.CreatedAt,
		&novelist.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrNovelistExists
		}
		return fmt.Errorf("failed to create novelist: %w", err)
	}

	return nil
}

// GetNovelistByID retrieves a novelist by ID.
func (r *Repository) GetNovelistByID(ctx context.Context, id int64) (*model.Novelist, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM novelists
		WHERE id = $1
	`

	return r.scanNovelist(r.pool.QueryRow(ctx, query, id))
}

// GetNovelistByName retrieves a novelist by its sanitized name.
// Used by the creation pre-check.
func (r *Repository) GetNovelistByName(ctx context.Context, name string) (*model.Novelist, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM novelists
		WHERE name = $1
	`

	return r.scanNovelist(r.pool.QueryRow(ctx, query, name))
}

// ListNovelists returns a page of novelists, optionally filtered by a
// case-insensitive name substring, plus the total count for the filter.
func (r *Repository) ListNovelists(ctx context.Context, nameFilter string, offset, limit int) ([]*model.Novelist, int64, error) {
	countQuery := `
		SELECT count(*)
		FROM novelists
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
	`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, nameFilter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count novelists: %w", err)
	}

	listQuery := `
		SELECT id, name, created_at, updated_at
		FROM novelists
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id
		OFFSET $2 LIMIT $3
	`

	rows, err := r.pool.Query(ctx, listQuery, nameFilter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list novelists: %w", err)
	}
	defer rows.Close()

	novelists := make([]*model.Novelist, 0, limit)
	for rows.Next() {
		var n model.Novelist
		if err := rows.Scan(&n.ID, &n.Name, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan novelist: %w", err)
		}
		novelists = append(novelists, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate novelists: %w", err)
	}

	return novelists, total, nil
}

// UpdateNovelist replaces the name and bumps updated_at.
func (r *Repository) UpdateNovelist(ctx context.Context, novelist *model.Novelist) error {
	query := `
		UPDATE novelists
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, novelist.ID, novelist.Name).Scan(&novelist.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNovelistNotFound
		}
		if isUniqueViolation(err) {
			return ErrNovelistExists
		}
		return fmt.Errorf("failed to update novelist: %w", err)
	}

	return nil
}

// DeleteNovelist removes a novelist by ID.
func (r *Repository) DeleteNovelist(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM novelists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete novelist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNovelistNotFound
	}
	return nil
}

func (r *Repository) scanNovelist(row pgx.Row) (*model.Novelist, error) {
	var n model.Novelist
	err := row.Scan(&n.ID, &n.Name, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNovelistNotFound
		}
		return nil, fmt.Errorf("failed to get novelist: %w", err)
	}
	return &n, nil
}
