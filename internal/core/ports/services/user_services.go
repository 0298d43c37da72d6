package services

import (
	"context"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/SscSPs/currency_purchase_api/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Register creates a local user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate checks email and password, returning apperrors.ErrUnauthorized on mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves an external identity to a local user.
	FindOrCreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}
