package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/adapters/cache"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/core/services"
	"github.com/SscSPs/currency_purchase_api/internal/handlers"
	"github.com/SscSPs/currency_purchase_api/internal/middleware"
	"github.com/SscSPs/currency_purchase_api/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// HandlerTestSuite drives the full router with mocked domain services and
// the real token service.
type HandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	cfg                    *config.Config
	mockCurrencyService    *MockCurrencyService
	mockTransactionService *MockTransactionService
	mockUserService        *MockUserService
	mockGoogleOAuth        *MockGoogleOAuthService
	tokenService           portssvc.TokenSvcFacade
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "cpa-test",
		LoginRateLimit:    "100-M",
		FrontendBaseURL:   "http://localhost:3000",
		IsProduction:      true,
	}
}

func newTestRouter(cfg *config.Config, container *portssvc.ServiceContainer) (*gin.Engine, error) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return nil, err
	}
	return r, nil
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.cfg = testConfig()
	suite.mockCurrencyService = new(MockCurrencyService)
	suite.mockTransactionService = new(MockTransactionService)
	suite.mockUserService = new(MockUserService)
	suite.mockGoogleOAuth = new(MockGoogleOAuthService)
	suite.tokenService = services.NewTokenService(suite.cfg, cache.NewExpiringCache(suite.cfg.JWTExpiryDuration))

	router, err := newTestRouter(suite.cfg, &portssvc.ServiceContainer{
		Currency:     suite.mockCurrencyService,
		Transaction:  suite.mockTransactionService,
		User:         suite.mockUserService,
		TokenService: suite.tokenService,
		GoogleOAuth:  suite.mockGoogleOAuth,
	})
	suite.Require().NoError(err)
	suite.router = router
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockCurrencyService.AssertExpectations(suite.T())
	suite.mockTransactionService.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockGoogleOAuth.AssertExpectations(suite.T())
}

// generateTestToken issues a real access token for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	token, _, err := suite.tokenService.GenerateAccessToken(context.Background(), &domain.User{UserID: userID})
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

// do performs a request; body is JSON-encoded unless it is already a string.
func (suite *HandlerTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response body into a generic map.
func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// fieldErrors extracts the per-field messages of a 422 response.
func (suite *HandlerTestSuite) fieldErrors(w *httptest.ResponseRecorder) map[string]any {
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(false, body["success"])
	errs, ok := body["errors"].(map[string]any)
	suite.Require().True(ok, "errors map missing: %s", w.Body.String())
	return errs
}
