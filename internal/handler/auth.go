package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/handler/dto"
	"github.com/litshelf/litshelf/internal/service"
)

// AuthHandler handles token issuance and refresh.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Token handles POST /auth/token.
// Credentials arrive form-encoded with the email in the username field,
// matching the OAuth2 password flow shape.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "could not parse form body")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "username and password are required")
		return
	}

	token, err := h.svc.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			writeError(w, http.StatusBadRequest, "BAD_CREDENTIALS", "incorrect email or password")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
		return
	}

	h.logger.Info("token_issued", "email", email)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Refresh handles POST /auth/refresh_token.
// Requires a valid bearer token; the auth middleware resolves the identity.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "could not validate credentials")
		return
	}

	token, err := h.svc.Refresh(r.Context(), identity)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
		return
	}

	h.logger.Info("token_refreshed", "account_id", identity.AccountID)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
