package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/dto"
	"github.com/SscSPs/currency_purchase_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, sign-in and sign-out.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the routes for authentication. credentialLimit
// guards the endpoints that accept a password.
func registerAuthRoutes(public, protected *gin.RouterGroup, services *portssvc.ServiceContainer, credentialLimit gin.HandlerFunc) {
	h := newAuthHandler(services.User, services.TokenService)

	auth := public.Group("/auth")
	{
		auth.POST("/register", credentialLimit, h.register)
		auth.POST("/login", credentialLimit, h.login)
	}

	protected.GET("/user", h.me)
	protected.POST("/logout", h.logout)
}

// register godoc
// @Summary Register new user
// @Description Creates a local account and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.Response{data=dto.AuthResponse}
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
				Message: validationFailedMessage,
				Errors:  map[string][]string{"email": {"The email has already been taken."}},
			})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to register user"))
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to generate token"))
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "User registered successfully",
		Data:    dto.ToAuthResponse(user, token, expiresAt),
	})
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Info("Rejected login attempt")
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid credentials"))
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to authenticate"))
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToAuthResponse(user, token, expiresAt)))
}

// me godoc
// @Summary Current user
// @Description Returns the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /user [get]
func (h *authHandler) me(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
		return
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Token subject no longer exists")
			c.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
			return
		}
		logger.Error("Failed to load current user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve user"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(user)))
}

// logout godoc
// @Summary Logout
// @Description Revokes the presented access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /logout [post]
func (h *authHandler) logout(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	tokenID, ok := middleware.GetTokenIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.Fail("Token cannot be revoked"))
		return
	}

	if err := h.tokenService.RevokeAccessToken(ctx, tokenID); err != nil {
		logger.Error("Failed to revoke token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to logout"))
		return
	}

	logger.Info("User logged out")
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Logged out successfully"})
}
