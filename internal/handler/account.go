package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/litshelf/litshelf/internal/auth"
	"github.com/litshelf/litshelf/internal/handler/dto"
	"github.com/litshelf/litshelf/internal/service"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /accounts/user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "username, email and password are required")
		return
	}

	account, err := h.svc.Register(r.Context(), service.AccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("account_created",
		"account_id", account.ID,
		"username", account.Username,
	)

	writeJSON(w, http.StatusCreated, account)
}

// Replace handles PUT /accounts/user/{id}.
func (h *AccountHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "account ID must be a positive integer")
		return
	}

	var req dto.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "username, email and password are required")
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	account, err := h.svc.Update(r.Context(), identity, id, service.AccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("account_updated", "account_id", account.ID)

	writeJSON(w, http.StatusOK, account)
}

// Delete handles DELETE /accounts/user/{id}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "account ID must be a positive integer")
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), identity, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("account_deleted", "account_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "account deleted"})
}

// handleServiceError maps service errors to HTTP responses.
func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotSelf):
		writeError(w, http.StatusUnauthorized, "NOT_SELF", "accounts can only be modified by their owner")
	case errors.Is(err, service.ErrAccountExists):
		writeError(w, http.StatusConflict, "ACCOUNT_EXISTS", "username or email already registered")
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
