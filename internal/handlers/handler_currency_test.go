package handlers_test

import (
	"net/http"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListCurrencies() {
	suite.mockCurrencyService.On("ListCurrencies", mock.Anything).Return([]domain.CurrencySummary{
		{Code: "EUR", Name: "Euro", ExchangeRate: decimal.RequireFromString("6.1")},
		{Code: "USD", Name: "Dólar Americano", ExchangeRate: decimal.RequireFromString("5.25")},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/currencies", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true,"data":[
		{"code":"EUR","name":"Euro","exchange_rate":"6.1"},
		{"code":"USD","name":"Dólar Americano","exchange_rate":"5.25"}
	]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestListCurrencies_Error() {
	suite.mockCurrencyService.On("ListCurrencies", mock.Anything).Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodGet, "/api/currencies", nil, "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal(false, suite.decode(w)["success"])
}

func (suite *HandlerTestSuite) TestShowCurrency_UsesLatestRate() {
	suite.mockCurrencyService.On("GetLatestRate", mock.Anything, "usd").Return(decimal.RequireFromString("5.5"), nil).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "usd").Return(&domain.Currency{
		CurrencyID:   "cur-1",
		Code:         "USD",
		Name:         "Dólar Americano",
		ExchangeRate: decimal.RequireFromString("5.5"),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/currencies/show/usd", nil, "")

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["success"])
	suite.Equal("5.5", body["exchange_rate"])
	suite.Equal("USD", body["data"].(map[string]any)["code"])
}

func (suite *HandlerTestSuite) TestShowCurrency_FallsBackToStoredRate() {
	suite.mockCurrencyService.On("GetLatestRate", mock.Anything, "USD").Return(decimal.Zero, assert.AnError).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{
		Code:         "USD",
		ExchangeRate: decimal.RequireFromString("4.9"),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/currencies/show/USD", nil, "")

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("4.9", suite.decode(w)["exchange_rate"])
}

func (suite *HandlerTestSuite) TestShowCurrency_NotFound() {
	suite.mockCurrencyService.On("GetLatestRate", mock.Anything, "XXX").Return(decimal.Zero, apperrors.ErrNotFound).Once()
	suite.mockCurrencyService.On("GetCurrencyByCode", mock.Anything, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/currencies/show/XXX", nil, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"success":false,"message":"Currency not found"}`, w.Body.String())
}
