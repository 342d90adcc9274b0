package models

// AuthData is the account profile returned by register and login.
// It never carries the password hash.
type AuthData struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse represents the response after successful registration
// or login.
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    AuthData `json:"data"`
}
