// Package dto provides request and response bodies for the HTTP API.
package dto

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse is a confirmation body for deletions.
type MessageResponse struct {
	Message string `json:"message"`
}
