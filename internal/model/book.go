package model

import "time"

// Book references exactly one Novelist. Title is stored lowercased and unique.
// Year is free-form text; the original catalog never validated it as numeric.
type Book struct {
	ID         int64     `json:"id"`
	Year       string    `json:"year"`
	Title      string    `json:"title"`
	NovelistID int64     `json:"novelist_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
