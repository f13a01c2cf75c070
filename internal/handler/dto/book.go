package dto

import (
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/service"
)

// CreateBookRequest represents the body for registering a book.
type CreateBookRequest struct {
	Year       string `json:"year"`
	Title      string `json:"title"`
	NovelistID int64  `json:"novelist_id"`
}

// UpdateBookRequest represents a partial book update.
// A nil field is left untouched.
type UpdateBookRequest struct {
	Year       *string `json:"year,omitempty"`
	Title      *string `json:"title,omitempty"`
	NovelistID *int64  `json:"novelist_id,omitempty"`
}

// BookListResponse represents a page of books.
type BookListResponse struct {
	Books      []*model.Book `json:"books"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
}

// ToBookListResponse converts a service page to the API shape.
func ToBookListResponse(page *service.BookPage) *BookListResponse {
	books := page.Books
	if books == nil {
		books = []*model.Book{}
	}
	return &BookListResponse{
		Books:      books,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
}
