package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/litshelf/litshelf/internal/model"
)

// Common errors for book repository operations.
var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book already exists")
)

// CreateBook inserts a new book and fills in the generated id and timestamps.
func (r *Repository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (year, title, novelist_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.Year,
		book.Title,
		book.NovelistID,
	).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrBookExists
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// GetBookByID retrieves a book by ID.
func (r *Repository) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT id, year, title, novelist_id, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	return r.scanBook(r.pool.QueryRow(ctx, query, id))
}

// GetBookByTitle retrieves a book by its lowercased title.
// Used by the creation pre-check.
func (r *Repository) GetBookByTitle(ctx context.Context, title string) (*model.Book, error) {
	query := `
		SELECT id, year, title, novelist_id, created_at, updated_at
		FROM books
		WHERE title = $1
	`

	return r.scanBook(r.pool.QueryRow(ctx, query, title))
}

// ListBooks returns a page of books filtered by an optional case-insensitive
// title substring and an optional exact year, plus the total count for the
// filters.
func (r *Repository) ListBooks(ctx context.Context, titleFilter, year string, offset, limit int) ([]*model.Book, int64, error) {
	countQuery := `
		SELECT count(*)
		FROM books
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR year = $2)
	`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, titleFilter, year).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	listQuery := `
		SELECT id, year, title, novelist_id, created_at, updated_at
		FROM books
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR year = $2)
		ORDER BY id
		OFFSET $3 LIMIT $4
	`

	rows, err := r.pool.Query(ctx, listQuery, titleFilter, year, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]*model.Book, 0, limit)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Year, &b.Title, &b.NovelistID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}

// UpdateBook replaces year, title and novelist reference and bumps updated_at.
func (r *Repository) UpdateBook(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET year = $2, title = $3, novelist_id = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Year,
		book.Title,
		book.NovelistID,
	).Scan(&book.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrBookNotFound
		}
		if isUniqueViolation(err) {
			return ErrBookExists
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

// DeleteBook removes a book by ID.
func (r *Repository) DeleteBook(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *Repository) scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Year, &b.Title, &b.NovelistID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &b, nil
}
