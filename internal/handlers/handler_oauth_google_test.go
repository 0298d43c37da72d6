package handlers_test

import (
	"errors"
	"net/http"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_Disabled() {
	suite.mockGoogleOAuth.On("Enabled").Return(false).Once()

	w := suite.do(http.MethodPost, "/api/auth/google/exchange-code", map[string]string{"code": "abc"}, "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_Success() {
	token := (&oauth2.Token{AccessToken: "google-access"}).WithExtra(map[string]any{"id_token": "google-id-token"})
	payload := &idtoken.Payload{
		Subject: "google-sub",
		Claims: map[string]any{
			"email":          "ana@example.com",
			"name":           "Ana",
			"email_verified": true,
		},
	}
	user := testUser()
	user.AuthProvider = domain.ProviderGoogle

	suite.mockGoogleOAuth.On("Enabled").Return(true).Once()
	suite.mockGoogleOAuth.On("ExchangeCodeForToken", mock.Anything, "abc").Return(token, nil).Once()
	suite.mockGoogleOAuth.On("ValidateGoogleIDToken", mock.Anything, "google-id-token").Return(payload, nil).Once()
	suite.mockUserService.On("FindOrCreateOAuthUser", mock.Anything, "Ana", "ana@example.com", domain.ProviderGoogle, "google-sub", true).
		Return(user, nil).Once()

	w := suite.do(http.MethodPost, "/api/auth/google/exchange-code", map[string]string{"code": "abc"}, "")

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	data := suite.decode(w)["data"].(map[string]any)
	suite.NotEmpty(data["access_token"])
	suite.Equal("google", data["user"].(map[string]any)["auth_provider"])
}

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_InvalidGrant() {
	suite.mockGoogleOAuth.On("Enabled").Return(true).Once()
	suite.mockGoogleOAuth.On("ExchangeCodeForToken", mock.Anything, "stale").
		Return(nil, errors.New(`oauth2: "invalid_grant" "Bad Request"`)).Once()

	w := suite.do(http.MethodPost, "/api/auth/google/exchange-code", map[string]string{"code": "stale"}, "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_InvalidIDToken() {
	token := (&oauth2.Token{AccessToken: "google-access"}).WithExtra(map[string]any{"id_token": "forged"})
	suite.mockGoogleOAuth.On("Enabled").Return(true).Once()
	suite.mockGoogleOAuth.On("ExchangeCodeForToken", mock.Anything, "abc").Return(token, nil).Once()
	suite.mockGoogleOAuth.On("ValidateGoogleIDToken", mock.Anything, "forged").Return(nil, errors.New("bad audience")).Once()

	w := suite.do(http.MethodPost, "/api/auth/google/exchange-code", map[string]string{"code": "abc"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestExchangeCodeGoogle_MissingCode() {
	suite.mockGoogleOAuth.On("Enabled").Return(true).Once()

	w := suite.do(http.MethodPost, "/api/auth/google/exchange-code", map[string]string{}, "")

	errs := suite.fieldErrors(w)
	suite.Contains(errs, "code")
}
