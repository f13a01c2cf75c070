package dto

import (
	"github.com/litshelf/litshelf/internal/model"
	"github.com/litshelf/litshelf/internal/service"
)

// CreateNovelistRequest represents the body for registering a novelist.
type CreateNovelistRequest struct {
	Name string `json:"name"`
}

// UpdateNovelistRequest represents a partial novelist update.
// A nil field is left untouched.
type UpdateNovelistRequest struct {
	Name *string `json:"name,omitempty"`
}

// NovelistListResponse represents a page of novelists.
type NovelistListResponse struct {
	Novelists  []*model.Novelist `json:"novelists"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// ToNovelistListResponse converts a service page to the API shape.
func ToNovelistListResponse(page *service.NovelistPage) *NovelistListResponse {
	novelists := page.Novelists
	if novelists == nil {
		novelists = []*model.Novelist{}
	}
	return &NovelistListResponse{
		Novelists:  novelists,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
}
