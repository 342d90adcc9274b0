package models

import "user-service/internal/entities"

// UserMutationResponse wraps the affected row for create, update and
// delete responses.
type UserMutationResponse struct {
	Message string         `json:"message"`
	User    *entities.User `json:"user"`
}
