package response

import (
	"time"

	"storefront/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID           int64           `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Role         entity.UserRole `json:"role"`
	IsBanned     bool            `json:"is_banned"`
	IsOnline     bool            `json:"is_online"`
	Newsletter   bool            `json:"newsletter"`
	LastActiveAt *time.Time      `json:"last_active_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User, online bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Role:         user.Role,
		IsBanned:     user.IsBanned,
		IsOnline:     online,
		Newsletter:   user.Newsletter,
		LastActiveAt: user.LastActiveAt,
		CreatedAt:    user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      UserToResponse(user, true),
	}
}
