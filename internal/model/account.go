// Package model defines domain entities for the application.
package model

import "time"

// Account is an identity and credential holder.
// PasswordHash is the Argon2id hash of the password; the plaintext is never stored.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
