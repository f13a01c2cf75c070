package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/metrics"
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
)

// ErrBadCredentials covers both unknown email and wrong password so the
// response does not reveal which check failed.
var ErrBadCredentials = errors.New("incorrect email or password")

// AccountLookup resolves accounts by their stored email.
type AccountLookup interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	store   AccountLookup
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(store AccountLookup, tokens *auth.TokenService, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{store: store, tokens: tokens, metrics: recorder}
}

// Login verifies the email/password pair and issues a token with the account
// email as subject. The submitted email is matched against the stored
// (sanitized) value verbatim - login input is not itself sanitized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.metrics.IncAuthFailure()
			return "", ErrBadCredentials
		}
		return "", fmt.Errorf("lookup account: %w", err)
	}

	match, err := auth.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		// Malformed stored hash is a server fault, not a credential failure.
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncAuthFailure()
		return "", ErrBadCredentials
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncTokenIssued()

	return token, nil
}

// Refresh issues a fresh token for an already-resolved identity.
// Expired tokens never reach here: the auth middleware rejects them.
func (s *AuthService) Refresh(ctx context.Context, identity *model.Identity) (string, error) {
	token, err := s.tokens.Issue(identity.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncTokenRefreshed()

	return token, nil
}
