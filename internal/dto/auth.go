package dto

import (
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
)

// RegisterRequest is the payload for creating a local account.
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// LoginRequest is the payload for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCodeRequest carries a Google authorization code.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// AuthResponse is returned by every sign-in flow.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	TokenType   string       `json:"token_type"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// ToAuthResponse builds the bearer token response for user.
func ToAuthResponse(user *domain.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		User:        ToUserResponse(user),
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}
}
