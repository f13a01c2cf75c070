package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/cache"
	"github.com/litshelf/litshelf/internal/metrics"
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
)

// AccountLookup resolves a token subject to a stored account.
type AccountLookup interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

// IdentityCache caches resolved identities keyed by token digest.
type IdentityCache interface {
	GetIdentity(ctx context.Context, digest string) (*model.Identity, error)
	SetIdentity(ctx context.Context, digest string, id *model.Identity) error
}

// AuthConfig holds dependencies for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Tokens   *auth.TokenService
	Accounts AccountLookup
	Cache    IdentityCache    // optional, skips caching when nil
	Metrics  metrics.Recorder // optional
}

// Auth returns a middleware that authenticates requests with a bearer token.
// The token subject is resolved to an account and the resulting identity is
// injected into the request context. All failures produce the same 401 body
// so callers cannot distinguish a bad token from a deleted account.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthFailure()
				writeAuthError(w)
				return
			}

			subject, err := cfg.Tokens.Validate(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthFailure()
				writeAuthError(w)
				return
			}

			digest := cache.TokenDigest(token)

			if cfg.Cache != nil {
				identity, _ := cfg.Cache.GetIdentity(r.Context(), digest)
				if identity != nil {
					recorder.IncIdentityCacheHit()
					ctx := auth.ContextWithIdentity(r.Context(), identity)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				recorder.IncIdentityCacheMiss()
			}

			account, err := cfg.Accounts.GetAccountByEmail(r.Context(), subject)
			if err != nil {
				if errors.Is(err, repository.ErrAccountNotFound) {
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "unknown_subject"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				} else {
					cfg.Logger.Error("database error during auth",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				recorder.IncAuthFailure()
				writeAuthError(w)
				return
			}

			identity := &model.Identity{
				AccountID: account.ID,
				Username:  account.Username,
				Email:     account.Email,
			}

			if cfg.Cache != nil {
				_ = cfg.Cache.SetIdentity(r.Context(), digest, identity)
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"could not validate credentials","code":"UNAUTHORIZED"}`))
}
