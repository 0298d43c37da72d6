package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	var c *domain.Currency
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Currency)
	}
	return c, args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	var cs []domain.Currency
	if args.Get(0) != nil {
		cs = args.Get(0).([]domain.Currency)
	}
	return cs, args.Error(1)
}

func (m *MockCurrencyRepository) ApplyQuote(ctx context.Context, quote domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpsertCurrency(ctx context.Context, code, name string) error {
	args := m.Called(ctx, code, name)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	var t *domain.Transaction
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.Transaction)
	}
	return t, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	var ts []domain.Transaction
	if args.Get(0) != nil {
		ts = args.Get(0).([]domain.Transaction)
	}
	return ts, args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, metadata domain.Metadata, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, status, metadata, updatedAt)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var u *domain.User
	if args.Get(0) != nil {
		u = args.Get(0).(*domain.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string, emailVerified bool) error {
	args := m.Called(ctx, userID, provider, providerUserID, emailVerified)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchQuote(ctx context.Context, code string) (*domain.Quote, error) {
	args := m.Called(ctx, code)
	var q *domain.Quote
	if args.Get(0) != nil {
		q = args.Get(0).(*domain.Quote)
	}
	return q, args.Error(1)
}

func (m *MockRateProvider) ListAvailable(ctx context.Context) ([]domain.AvailableCurrency, error) {
	args := m.Called(ctx)
	var cs []domain.AvailableCurrency
	if args.Get(0) != nil {
		cs = args.Get(0).([]domain.AvailableCurrency)
	}
	return cs, args.Error(1)
}

// --- Mock CurrencyReaderSvc ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.CurrencySummary, error) {
	args := m.Called(ctx)
	var cs []domain.CurrencySummary
	if args.Get(0) != nil {
		cs = args.Get(0).([]domain.CurrencySummary)
	}
	return cs, args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	var c *domain.Currency
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Currency)
	}
	return c, args.Error(1)
}

func (m *MockCurrencyService) GetLatestRate(ctx context.Context, code string) (decimal.Decimal, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
