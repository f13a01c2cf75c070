package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// ErrInvalidToken covers every token rejection: bad signature, expired,
// malformed, or missing subject claim. Callers must not distinguish these
// cases in responses.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenLifetime matches the original catalog's 60-minute tokens.
const DefaultTokenLifetime = 60 * time.Minute

// TokenService issues and validates HS256-signed bearer tokens carrying the
// account email as subject. Secret and lifetime are injected at construction;
// there is no process-global token configuration.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a TokenService with the given signing secret and
// token lifetime. A non-positive lifetime falls back to the default.
func NewTokenService(secret []byte, lifetime time.Duration) *TokenService {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenService{
		secret:   secret,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Lifetime returns the configured token lifetime.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue produces a signed token for the given subject, expiring at
// now + lifetime. The jti claim is a fresh ULID.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Validate verifies signature and expiry and returns the subject claim.
// Any failure, including an absent subject, yields ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Refresh validates the token and issues a fresh one for the same subject.
// An expired token cannot be refreshed: it fails validation like any other.
func (s *TokenService) Refresh(tokenString string) (string, error) {
	subject, err := s.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return s.Issue(subject)
}
