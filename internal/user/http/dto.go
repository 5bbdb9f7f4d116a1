package http

import (
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

// ListUsersRequest defines query parameters for listing users.
type ListUsersRequest struct {
	request.ListParams
	Name string `form:"name" binding:"omitempty,max=50"`
}

// Validate performs custom validation for ListUsersRequest.
func (r *ListUsersRequest) Validate() error {
	return nil
}

// UserResponse is the shape of user data returned in API responses.
// The credential hash never leaves the service.
type UserResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"username"`
	IsAdmin   bool                     `json:"is_admin"`
	CreatedAt time.Time                `json:"created_at"`
	Links     map[string]response.Link `json:"_links"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	links := response.SelfLinks("/v1/users/" + u.ID)
	links = response.WithLink(links, "users", "/v1/users")
	links = response.WithLink(links, "reservations", "/v1/reservations?user_id="+u.ID)

	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		Links:     links,
	}
}

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"omitempty"`
}

// Validate performs custom validation for RegisterRequest.
// The binding tag max counts characters, bcrypt counts bytes.
func (r *RegisterRequest) Validate() error {
	if len(r.Password) > user.MaxSecretBytes {
		return user.ErrSecretTooLong
	}
	return nil
}
