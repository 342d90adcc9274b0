package entities

// User represents one account row in the users table
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Don't expose password hash in JSON
	Role         string `json:"role"`
}

// DefaultRole is assigned when registration omits a role. The role set
// is open ended; nothing validates the label.
const DefaultRole = "customer"
