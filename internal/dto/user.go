package dto

import (
	"time"

	"github.com/wardline/roster-api/internal/identity"
)

// UserDTO is the caller's identity profile as returned by /auth/me.
type UserDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserDTO converts a resolved identity.
func ToUserDTO(user identity.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		ConfirmedAt: user.ConfirmedAt,
		CreatedAt:   user.CreatedAt,
	}
}
