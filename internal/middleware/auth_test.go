package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/repository"
)

type stubAccountLookup struct {
	accounts map[string]*model.Account
}

func (s *stubAccountLookup) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	if a, ok := s.accounts[email]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrAccountNotFound
}

type stubIdentityCache struct {
	entries map[string]*model.Identity
	hits    int
	sets    int
}

func (s *stubIdentityCache) GetIdentity(ctx context.Context, digest string) (*model.Identity, error) {
	if id, ok := s.entries[digest]; ok {
		s.hits++
		cp := *id
		return &cp, nil
	}
	return nil, nil
}

func (s *stubIdentityCache) SetIdentity(ctx context.Context, digest string, id *model.Identity) error {
	s.sets++
	cp := *id
	s.entries[digest] = &cp
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthMiddleware(t *testing.T, lookup AccountLookup, idCache IdentityCache) (*auth.TokenService, http.Handler) {
	t.Helper()

	tokens := auth.NewTokenService([]byte("middleware-test-secret"), time.Hour)

	var capturedIdentity *model.Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedIdentity = auth.IdentityFromContext(r.Context())
		if capturedIdentity == nil {
			t.Error("no identity in context after auth middleware")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := Auth(AuthConfig{
		Logger:   discardLogger(),
		Tokens:   tokens,
		Accounts: lookup,
		Cache:    idCache,
	})(inner)

	return tokens, wrapped
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	lookup := &stubAccountLookup{accounts: map[string]*model.Account{
		"reader@example.com": {ID: 7, Username: "reader", Email: "reader@example.com"},
	}}
	tokens, handler := newAuthMiddleware(t, lookup, nil)

	token, err := tokens.Issue("reader@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/novelists/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuth_Unauthorized(t *testing.T) {
	t.Parallel()

	lookup := &stubAccountLookup{accounts: map[string]*model.Account{
		"reader@example.com": {ID: 7, Username: "reader", Email: "reader@example.com"},
	}}
	tokens, handler := newAuthMiddleware(t, lookup, nil)

	validToken, err := tokens.Issue("reader@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	deletedToken, err := tokens.Issue("gone@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	otherSecret := auth.NewTokenService([]byte("wrong-secret"), time.Hour)
	forgedToken, err := otherSecret.Issue("reader@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + validToken},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + forgedToken},
		{"deleted account", "Bearer " + deletedToken},
	}

	var firstBody string
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}

			// Every failure mode returns the identical body.
			body := rec.Body.String()
			if firstBody == "" {
				firstBody = body
			} else if body != firstBody {
				t.Errorf("auth error bodies differ: %q vs %q", body, firstBody)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	lookup := &stubAccountLookup{accounts: map[string]*model.Account{
		"reader@example.com": {ID: 7, Username: "reader", Email: "reader@example.com"},
	}}

	shortLived := auth.NewTokenService([]byte("middleware-test-secret"), time.Nanosecond)
	token, err := shortLived.Issue("reader@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, handler := newAuthMiddleware(t, lookup, nil)

	req := httptest.NewRequest("POST", "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_IdentityCache(t *testing.T) {
	t.Parallel()

	lookup := &stubAccountLookup{accounts: map[string]*model.Account{
		"reader@example.com": {ID: 7, Username: "reader", Email: "reader@example.com"},
	}}
	idCache := &stubIdentityCache{entries: map[string]*model.Identity{}}
	tokens, handler := newAuthMiddleware(t, lookup, idCache)

	token, err := tokens.Issue("reader@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/novelists", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}

	if idCache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", idCache.sets)
	}
	if idCache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", idCache.hits)
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc123", "abc123"},
		{"empty", "", ""},
		{"basic", "Basic abc123", ""},
		{"bare token", "abc123", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteAuthError_Body(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeAuthError(rec)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
		t.Errorf("body = %q, want UNAUTHORIZED code", rec.Body.String())
	}
}
