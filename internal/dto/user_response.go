package dto

import (
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
)

type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AuthProvider  string    `json:"auth_provider"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		AuthProvider:  string(user.AuthProvider),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
