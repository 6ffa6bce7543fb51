package dto

import (
	"time"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CreateUserRequest payload for new accounts. Teams lists slugs of existing
// teams the new user joins immediately.
type CreateUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Position *string  `json:"position"`
	Teams    []string `json:"teams"`
}

// UpdateUserRequest carries partial-update fields; nil means leave untouched.
// Supplied teams are joined in addition to existing memberships.
type UpdateUserRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Position *string  `json:"position"`
	Teams    []string `json:"teams"`
}

// UserResponse is the user shape returned by every endpoint. The password
// hash never appears here.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Position  *string   `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse shapes a domain user for output.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Position:  user.Position,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses shapes a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
