package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/litshelf/litshelf/internal/handler/dto"
	"github.com/litshelf/litshelf/internal/service"
)

// BookHandler handles HTTP requests for book operations.
type BookHandler struct {
	svc    *service.BookService
	logger *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /books/new.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Title == "" || req.NovelistID <= 0 {
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "title and novelist_id are required")
		return
	}

	book, err := h.svc.Create(r.Context(), service.CreateBookInput{
		Year:       req.Year,
		Title:      req.Title,
		NovelistID: req.NovelistID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_created",
		"book_id", book.ID,
		"title", book.Title,
		"novelist_id", book.NovelistID,
	)

	writeJSON(w, http.StatusCreated, book)
}

// List handles GET /books/list.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)
	query := r.URL.Query()

	result, err := h.svc.List(r.Context(), service.ListBooksInput{
		Title:   query.Get("title"),
		Year:    query.Get("year"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBookListResponse(result))
}

// Get handles GET /books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "book ID must be a positive integer")
		return
	}

	book, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// Update handles PATCH /books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "book ID must be a positive integer")
		return
	}

	var req dto.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	book, err := h.svc.Update(r.Context(), id, service.UpdateBookInput{
		Year:       req.Year,
		Title:      req.Title,
		NovelistID: req.NovelistID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_updated", "book_id", book.ID)

	writeJSON(w, http.StatusOK, book)
}

// Delete handles DELETE /books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "book ID must be a positive integer")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_deleted", "book_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "book deleted"})
}

// handleServiceError maps service errors to HTTP responses.
func (h *BookHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBookExists):
		writeError(w, http.StatusConflict, "BOOK_EXISTS", "book title already registered")
	case errors.Is(err, service.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
	case errors.Is(err, service.ErrNovelistNotFound):
		writeError(w, http.StatusNotFound, "NOVELIST_NOT_FOUND", "novelist not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
