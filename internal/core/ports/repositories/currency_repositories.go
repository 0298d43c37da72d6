package repositories

import (
	"context"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all active currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// ApplyQuote stores a fresh rate (and name, when the quote carries one) on
	// the currency with the quote's code. Unknown codes are left untouched.
	ApplyQuote(ctx context.Context, quote domain.Quote) error

	// UpsertCurrency inserts a currency or updates the name of an existing one.
	UpsertCurrency(ctx context.Context, code, name string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
