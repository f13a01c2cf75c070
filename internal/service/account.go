// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/metrics"
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
	"github.com/litshelf/litshelf/internal/sanitize"
)

// Account service errors.
var (
	ErrAccountExists   = errors.New("account already registered")
	ErrAccountNotFound = errors.New("account not found")
	ErrNotSelf         = errors.New("not the account owner")
)

// AccountStore is the storage surface the account service needs.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	GetAccountByUsernameOrEmail(ctx context.Context, username, email string) (*model.Account, error)
	UpdateAccount(ctx context.Context, account *model.Account) error
	DeleteAccount(ctx context.Context, id int64) error
}

// AccountService handles account registration and owner-only mutation.
type AccountService struct {
	store   AccountStore
	metrics metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(store AccountStore, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{store: store, metrics: recorder}
}

// AccountInput carries the writable account fields.
// Username and email are sanitized before any lookup or write, so two
// spellings of the same address collide on registration.
type AccountInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account. The username/email conflict pre-check runs
// against the sanitized values; the database unique constraints backstop it.
func (s *AccountService) Register(ctx context.Context, input AccountInput) (*model.Account, error) {
	username := sanitize.Name(input.Username)
	email := sanitize.Email(input.Email)

	existing, err := s.store.GetAccountByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.metrics.IncAccountCreated()

	return account, nil
}

// Update replaces the account's username, email and password. Only the owner
// may update: the resolved identity must match the target ID, regardless of
// whether the target exists.
func (s *AccountService) Update(ctx context.Context, identity *model.Identity, targetID int64, input AccountInput) (*model.Account, error) {
	if identity == nil || identity.AccountID != targetID {
		return nil, ErrNotSelf
	}

	account, err := s.store.GetAccountByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account.Username = sanitize.Name(input.Username)
	account.Email = sanitize.Email(input.Email)
	account.PasswordHash = hash

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("update account: %w", err)
	}

	s.metrics.IncAccountUpdated()

	return account, nil
}

// Delete removes the account. Only the owner may delete.
func (s *AccountService) Delete(ctx context.Context, identity *model.Identity, targetID int64) error {
	if identity == nil || identity.AccountID != targetID {
		return ErrNotSelf
	}

	if err := s.store.DeleteAccount(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	s.metrics.IncAccountDeleted()

	return nil
}
