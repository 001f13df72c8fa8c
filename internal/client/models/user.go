package models

// User identifies the account a session belongs to.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// AuthResult is the payload of a successful login or register call.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
