package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a token for user and returns it with its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// RevokeAccessToken rejects the token with tokenID until it would have expired anyway.
	RevokeAccessToken(ctx context.Context, tokenID string) error

	// IsRevoked reports whether tokenID has been revoked.
	IsRevoked(tokenID string) bool
}

// GoogleOAuthSvcFacade defines the interface for Google sign-in.
type GoogleOAuthSvcFacade interface {
	// Enabled reports whether a Google client is configured.
	Enabled() bool
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
