package handlers_test

import (
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testTransactionID = "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b"

func decimalEq(want string) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(want))
	})
}

func testTransaction() *domain.Transaction {
	ref := "ABCDEFGHIJKLMNO"
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Transaction{
		TransactionID: testTransactionID,
		UserID:        "user-1",
		CurrencyID:    "cur-1",
		Amount:        decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(102),
		ForeignAmount: decimal.RequireFromString("19.05"),
		ExchangeRate:  decimal.RequireFromString("5.25"),
		FeePercentage: decimal.NewFromInt(2),
		FeeAmount:     decimal.NewFromInt(2),
		Status:        domain.StatusCompleted,
		Metadata:      domain.Metadata{domain.MetaCurrencyCode: "USD"},
		ReferenceID:   &ref,
		AuditFields:   domain.AuditFields{CreatedAt: at, UpdatedAt: at},
		Currency:      &domain.Currency{CurrencyID: "cur-1", Code: "USD", Name: "Dólar Americano"},
	}
}

func (suite *HandlerTestSuite) TestSimulate_Success() {
	suite.mockTransactionService.On("Simulate", mock.Anything, "USD", decimalEq("100")).Return(&domain.Breakdown{
		Amount:        decimal.NewFromInt(100),
		ExchangeRate:  decimal.RequireFromString("5.25"),
		FeePercentage: decimal.NewFromInt(2),
		FeeAmount:     decimal.NewFromInt(2),
		ForeignAmount: decimal.RequireFromString("19.05"),
		TotalAmount:   decimal.NewFromInt(102),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/transactions/simulate",
		map[string]any{"currency_code": "USD", "amount": 100}, suite.generateTestToken("user-1"))

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	data := suite.decode(w)["data"].(map[string]any)
	suite.Equal("2.00", data["fee_amount"])
	suite.Equal("19.05", data["foreign_amount"])
	suite.Equal("102.00", data["total_amount"])
}

func (suite *HandlerTestSuite) TestSimulate_RequiresAuth() {
	w := suite.do(http.MethodPost, "/api/transactions/simulate", map[string]any{"currency_code": "USD", "amount": 100}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestSimulate_Validation() {
	token := suite.generateTestToken("user-1")

	errs := suite.fieldErrors(suite.do(http.MethodPost, "/api/transactions/simulate",
		map[string]any{"currency_code": "USD", "amount": 49.99}, token))
	suite.Equal([]any{"The amount field must be at least 50."}, errs["amount"])

	errs = suite.fieldErrors(suite.do(http.MethodPost, "/api/transactions/simulate",
		map[string]any{"amount": 100}, token))
	suite.Equal([]any{"The currency code field is required."}, errs["currency_code"])

	errs = suite.fieldErrors(suite.do(http.MethodPost, "/api/transactions/simulate",
		`{"currency_code":"USD","amount":"lots"}`, token))
	suite.Equal([]any{"The amount field must be a number."}, errs["amount"])
}

func (suite *HandlerTestSuite) TestSimulate_MalformedJSON() {
	w := suite.do(http.MethodPost, "/api/transactions/simulate", `{"currency_code":`, suite.generateTestToken("user-1"))
	suite.NotEqual(http.StatusOK, w.Code)
	suite.Equal(false, suite.decode(w)["success"])
}

func (suite *HandlerTestSuite) TestSimulate_UnknownCurrency() {
	suite.mockTransactionService.On("Simulate", mock.Anything, "XXX", decimalEq("100")).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPost, "/api/transactions/simulate",
		map[string]any{"currency_code": "XXX", "amount": 100}, suite.generateTestToken("user-1"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"success":false,"message":"Currency not found or rate unavailable"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestPurchase_Success() {
	notes := "trip"
	suite.mockTransactionService.On("ProcessPurchase", mock.Anything, "user-1", "USD", decimalEq("100"),
		mock.MatchedBy(func(n *string) bool { return n != nil && *n == notes }),
	).Return(testTransaction(), nil).Once()

	w := suite.do(http.MethodPost, "/api/transactions",
		map[string]any{"currency_code": "USD", "amount": 100, "notes": notes}, suite.generateTestToken("user-1"))

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["success"])
	suite.Equal("Transaction completed successfully", body["message"])
	data := body["data"].(map[string]any)
	suite.Equal(testTransactionID, data["id"])
	suite.Equal("102.00", data["amount_paid"])
	suite.Equal("USD", data["currency"].(map[string]any)["code"])
}

func (suite *HandlerTestSuite) TestPurchase_NotesTooLong() {
	w := suite.do(http.MethodPost, "/api/transactions",
		map[string]any{"currency_code": "USD", "amount": 100, "notes": strings.Repeat("n", 256)}, suite.generateTestToken("user-1"))

	errs := suite.fieldErrors(w)
	suite.Contains(errs, "notes")
}

func (suite *HandlerTestSuite) TestPurchase_Failures() {
	suite.mockTransactionService.On("ProcessPurchase", mock.Anything, "user-1", "XXX", decimalEq("60"), (*string)(nil)).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionService.On("ProcessPurchase", mock.Anything, "user-1", "USD", decimalEq("60"), (*string)(nil)).
		Return(nil, assert.AnError).Once()
	token := suite.generateTestToken("user-1")

	w := suite.do(http.MethodPost, "/api/transactions", map[string]any{"currency_code": "XXX", "amount": 60}, token)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"success":false,"message":"Failed to process transaction"}`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/transactions", map[string]any{"currency_code": "USD", "amount": 60}, token)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions() {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockTransactionService.On("ListForUser", mock.Anything, "user-1",
		mock.MatchedBy(func(f domain.TransactionFilter) bool {
			return f.CurrencyCode == "USD" && f.Status == domain.StatusCompleted &&
				f.FromDate != nil && f.FromDate.Equal(from) && f.ToDate == nil
		}), 2, 5,
	).Return(&domain.TransactionPage{
		Items:   []domain.Transaction{*testTransaction()},
		Page:    2,
		PerPage: 5,
		Total:   6,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions?page=2&per_page=5&currency_code=usd&status=completed&from_date=2024-01-01",
		nil, suite.generateTestToken("user-1"))

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	data := suite.decode(w)["data"].(map[string]any)
	suite.Len(data["items"], 1)
	suite.Equal(map[string]any{"current_page": 2.0, "per_page": 5.0, "total": 6.0, "last_page": 2.0}, data["meta"])
}

func (suite *HandlerTestSuite) TestListTransactions_Defaults() {
	suite.mockTransactionService.On("ListForUser", mock.Anything, "user-1", domain.TransactionFilter{}, 0, 0).
		Return(&domain.TransactionPage{Items: []domain.Transaction{}, Page: 1, PerPage: 10}, nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions", nil, suite.generateTestToken("user-1"))

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true,"data":{"items":[],"meta":{"current_page":1,"per_page":10,"total":0,"last_page":1}}}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestListTransactions_InvalidFilters() {
	token := suite.generateTestToken("user-1")

	errs := suite.fieldErrors(suite.do(http.MethodGet, "/api/transactions?status=cancelled", nil, token))
	suite.Contains(errs, "status")

	errs = suite.fieldErrors(suite.do(http.MethodGet, "/api/transactions?from_date=01/02/2024", nil, token))
	suite.Contains(errs, "from_date")

	errs = suite.fieldErrors(suite.do(http.MethodGet, "/api/transactions?per_page=500", nil, token))
	suite.Contains(errs, "per_page")
}

func (suite *HandlerTestSuite) TestGetTransaction() {
	suite.mockTransactionService.On("GetTransaction", mock.Anything, testTransactionID, "user-1").Return(testTransaction(), nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions/"+testTransactionID, nil, suite.generateTestToken("user-1"))

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(testTransactionID, suite.decode(w)["data"].(map[string]any)["id"])
}

func (suite *HandlerTestSuite) TestGetTransaction_NotOwned() {
	suite.mockTransactionService.On("GetTransaction", mock.Anything, testTransactionID, "user-2").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/transactions/"+testTransactionID, nil, suite.generateTestToken("user-2"))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"success":false,"message":"Transaction not found"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetTransaction_MalformedID() {
	w := suite.do(http.MethodGet, "/api/transactions/not-a-uuid", nil, suite.generateTestToken("user-1"))
	suite.Equal(http.StatusNotFound, w.Code)
}
