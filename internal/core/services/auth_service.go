package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portscache "github.com/SscSPs/currency_purchase_api/internal/core/ports/cache"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/platform/config"
	"github.com/SscSPs/currency_purchase_api/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues access tokens and tracks the ones revoked by logout.
// revoked must expire entries no sooner than cfg.JWTExpiryDuration.
type tokenService struct {
	cfg     *config.Config
	revoked portscache.Cache
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, revoked portscache.Cache) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:     cfg,
		revoked: revoked,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

func (s *tokenService) RevokeAccessToken(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return errors.New("token has no ID to revoke")
	}
	s.revoked.Set(tokenID, struct{}{})
	return nil
}

func (s *tokenService) IsRevoked(tokenID string) bool {
	_, ok := s.revoked.Get(tokenID)
	return ok
}

// --- GoogleOAuthSvcFacade Implementation ---

type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates the Google sign-in service. It reports
// Enabled() == false when no client ID is configured.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *googleOAuthService) Enabled() bool {
	return s.cfg.GoogleClientID != ""
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if !s.Enabled() {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
