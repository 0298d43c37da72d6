package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/currency_purchase_api/internal/dto"
	"github.com/SscSPs/currency_purchase_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenRevocationChecker reports whether an access token has been revoked by logout.
type TokenRevocationChecker interface {
	IsRevoked(tokenID string) bool
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// revocations may be nil, in which case logout revocation is not enforced.
func AuthMiddleware(jwtSecret string, revocations TokenRevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization header format must be Bearer {token}"))
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(msg))
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token claims"))
			return
		}

		if revocations != nil && claims.ID != "" && revocations.IsRevoked(claims.ID) {
			logger.Info("Revoked token presented", slog.String("user_id", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Token has been revoked"))
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.Subject)
		if claims.ID != "" {
			ctx = context.WithValue(ctx, tokenIDKey, claims.ID)
		}
		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, tokenExpiryKey, claims.ExpiresAt.Time)
		}
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", claims.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
