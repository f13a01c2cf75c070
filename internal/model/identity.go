package model

// Identity is the resolved authenticated account attached to a request
// after the auth middleware has validated the bearer token.
type Identity struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
