package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/litshelf/litshelf/internal/model"
)

// Common errors for account repository operations.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
)

// CreateAccount inserts a new account and fills in the generated
// id and timestamps.
func (r *Repository) CreateAccount(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
	).Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by its ID.
func (r *Repository) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetAccountByEmail retrieves an account by its (sanitized) email address.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, email))
}

// GetAccountByUsernameOrEmail retrieves an account matching either field.
// Used by the registration pre-check.
func (r *Repository) GetAccountByUsernameOrEmail(ctx context.Context, username, email string) (*model.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE username = $1 OR email = $2
	`

	return r.scanAccount(r.pool.QueryRow(ctx, query, username, email))
}

// UpdateAccount replaces username, email and password hash and bumps
// updated_at.
func (r *Repository) UpdateAccount(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET username = $2, email = $3, password_hash = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
	).Scan(&account.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAccountNotFound
		}
		if isUniqueViolation(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

// DeleteAccount removes an account by ID.
func (r *Repository) DeleteAccount(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *Repository) scanAccount(row pgx.Row) (*model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}
