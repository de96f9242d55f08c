package dto

import (
	"time"

	"github.com/bienestar-app/platform/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateResponse is returned by the peer-facing validation endpoint.
type ValidateResponse struct {
	UserID int64           `json:"user_id"`
	Role   domain.RoleName `json:"role"`
}

// UserResponse is the outward account shape; password hashes never leave.
type UserResponse struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     domain.RoleName `json:"role"`
	Blocked  bool            `json:"blocked"`
}

// AssignRoleRequest payload for role reassignment.
type AssignRoleRequest struct {
	Role domain.RoleName `json:"role"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Blocked:  user.Blocked,
	}
}
