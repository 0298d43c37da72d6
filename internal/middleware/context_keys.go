package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys from other packages.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	userIDKey      = contextKey("userID")
	tokenIDKey     = contextKey("tokenID")
	tokenExpiryKey = contextKey("tokenExpiry")
)

// GetUserIDFromContext retrieves the authenticated user ID set by AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), userIDKey)
}

// GetTokenIDFromContext retrieves the jti of the presented access token.
func GetTokenIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), tokenIDKey)
}

// GetTokenExpiryFromContext retrieves the expiry of the presented access token.
func GetTokenExpiryFromContext(c *gin.Context) (time.Time, bool) {
	exp, ok := c.Request.Context().Value(tokenExpiryKey).(time.Time)
	return exp, ok
}

// WithUserID returns a copy of ctx carrying userID. Used by tests and background jobs.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func stringFromCtx(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
