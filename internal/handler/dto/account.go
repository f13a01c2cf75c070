package dto

// AccountRequest represents the body for creating or replacing an account.
type AccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
