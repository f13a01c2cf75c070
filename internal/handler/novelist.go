package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/litshelf/litshelf/internal/handler/dto"
	"github.com/litshelf/litshelf/internal/service"
)

// NovelistHandler handles HTTP requests for novelist operations.
type NovelistHandler struct {
	svc    *service.NovelistService
	logger *slog.Logger
}

// NewNovelistHandler creates a new NovelistHandler.
func NewNovelistHandler(svc *service.NovelistService, logger *slog.Logger) *NovelistHandler {
	return &NovelistHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /novelists/new.
func (h *NovelistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNovelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "name is required")
		return
	}

	novelist, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("novelist_created",
		"novelist_id", novelist.ID,
		"name", novelist.Name,
	)

	writeJSON(w, http.StatusCreated, novelist)
}

// List handles GET /novelists/list.
func (h *NovelistHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)

	result, err := h.svc.List(r.Context(), r.URL.Query().Get("name"), page, perPage)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNovelistListResponse(result))
}

// Get handles GET /novelists/{id}.
func (h *NovelistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "novelist ID must be a positive integer")
		return
	}

	novelist, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, novelist)
}

// Update handles PATCH /novelists/{id}.
func (h *NovelistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "novelist ID must be a positive integer")
		return
	}

	var req dto.UpdateNovelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	novelist, err := h.svc.Update(r.Context(), id, service.UpdateNovelistInput{Name: req.Name})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("novelist_updated", "novelist_id", novelist.ID)

	writeJSON(w, http.StatusOK, novelist)
}

// Delete handles DELETE /novelists/{id}.
func (h *NovelistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "novelist ID must be a positive integer")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("novelist_deleted", "novelist_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "novelist deleted"})
}

// handleServiceError maps service errors to HTTP responses.
func (h *NovelistHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNovelistExists):
		writeError(w, http.StatusConflict, "NOVELIST_EXISTS", "novelist already registered")
	case errors.Is(err, service.ErrNovelistNotFound):
		writeError(w, http.StatusNotFound, "NOVELIST_NOT_FOUND", "novelist not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
