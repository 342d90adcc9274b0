package models

// CreateUserRequest is the body of POST /users. All three fields must
// be non-empty; the handler rejects the request before any store call.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateUserRequest is the body of PUT /users/:id. The update is a
// full replace of the three mutable fields; password is not updatable
// through this endpoint.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
