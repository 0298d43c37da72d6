package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/adapters/cache"
	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/core/services"
	"github.com/SscSPs/currency_purchase_api/internal/dto"
	"github.com/SscSPs/currency_purchase_api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		UserID:       "user-1",
		Name:         "Ana",
		Email:        "ana@example.com",
		AuthProvider: domain.ProviderLocal,
		AuditFields:  domain.AuditFields{CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (suite *HandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password123", PasswordConfirmation: "password123"}
	suite.mockUserService.On("Register", mock.Anything, req).Return(testUser(), nil).Once()

	w := suite.do(http.MethodPost, "/api/auth/register", req, "")

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["success"])
	data := body["data"].(map[string]any)
	suite.Equal("Bearer", data["token_type"])
	suite.Equal("ana@example.com", data["user"].(map[string]any)["email"])

	claims, err := utils.ParseAndValidateJWT(data["access_token"].(string), suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("user-1", claims.Subject)
}

func (suite *HandlerTestSuite) TestRegister_ValidationErrors() {
	w := suite.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name":                  "Ana",
		"email":                 "not-an-email",
		"password":              "short",
		"password_confirmation": "different",
	}, "")

	errs := suite.fieldErrors(w)
	suite.Contains(errs, "email")
	suite.Contains(errs, "password")
	suite.Contains(errs, "password_confirmation")
}

func (suite *HandlerTestSuite) TestRegister_EmptyBody() {
	w := suite.do(http.MethodPost, "/api/auth/register", "", "")

	errs := suite.fieldErrors(w)
	suite.Equal([]any{"The name field is required."}, errs["name"])
}

func (suite *HandlerTestSuite) TestRegister_DuplicateEmail() {
	req := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password123", PasswordConfirmation: "password123"}
	suite.mockUserService.On("Register", mock.Anything, req).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/auth/register", req, "")

	errs := suite.fieldErrors(w)
	suite.Equal([]any{"The email has already been taken."}, errs["email"])
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.mockUserService.On("Authenticate", mock.Anything, "ana@example.com", "password123").Return(testUser(), nil).Once()
	suite.mockUserService.On("Authenticate", mock.Anything, "ana@example.com", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@example.com", Password: "password123"}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.NotEmpty(suite.decode(w)["data"].(map[string]any)["access_token"])
	suite.NotEmpty(w.Header().Get("X-RateLimit-Limit"))

	w = suite.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"success":false,"message":"Invalid credentials"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestMe() {
	suite.mockUserService.On("GetUserByID", mock.Anything, "user-1").Return(testUser(), nil).Once()

	w := suite.do(http.MethodGet, "/api/user", nil, suite.generateTestToken("user-1"))

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("user-1", suite.decode(w)["data"].(map[string]any)["id"])
}

func (suite *HandlerTestSuite) TestMe_Unauthenticated() {
	w := suite.do(http.MethodGet, "/api/user", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"success":false,"message":"Unauthenticated."}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestLogout_RevokesToken() {
	token := suite.generateTestToken("user-1")

	w := suite.do(http.MethodPost, "/api/logout", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/user", nil, token)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"success":false,"message":"Token has been revoked"}`, w.Body.String())
}

func TestLogin_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = "1-M"
	users := new(MockUserService)
	users.On("Authenticate", mock.Anything, "ana@example.com", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()

	router, err := newTestRouter(cfg, &portssvc.ServiceContainer{
		Currency:     new(MockCurrencyService),
		Transaction:  new(MockTransactionService),
		User:         users,
		TokenService: services.NewTokenService(cfg, cache.NewExpiringCache(time.Hour)),
		GoogleOAuth:  new(MockGoogleOAuthService),
	})
	require.NoError(t, err)

	s := &HandlerTestSuite{router: router}
	s.SetT(t)
	first := s.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "")
	second := s.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}, "")

	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	users.AssertExpectations(t)
}

func TestRegisterRoutes_InvalidLoginRate(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = "lots"

	_, err := newTestRouter(cfg, &portssvc.ServiceContainer{
		TokenService: services.NewTokenService(cfg, cache.NewExpiringCache(time.Hour)),
	})
	assert.Error(t, err)
}
