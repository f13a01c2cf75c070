package model

import "time"

// Novelist is an author entity. Name is stored in sanitized form and unique.
type Novelist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
