package services

import (
	"context"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// ListCurrencies returns every currency ordered by code. Served from cache when warm.
	ListCurrencies(ctx context.Context) ([]domain.CurrencySummary, error)

	// GetCurrencyByCode retrieves a specific currency by its code, bypassing the cache.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// GetLatestRate returns the freshest available rate for code, falling back
	// to the stored rate when the provider fails. Returns apperrors.ErrNotFound
	// when no rate can be produced.
	GetLatestRate(ctx context.Context, code string) (decimal.Decimal, error)
}

// CurrencyRefresherSvc defines operations that pull data from the quote provider
type CurrencyRefresherSvc interface {
	// RefreshExchangeRates updates every currency from the provider. The bool is
	// false only when a connectivity failure aborted the batch.
	RefreshExchangeRates(ctx context.Context) (bool, error)

	// ImportCurrencies upserts the provider's currency list and refreshes rates.
	ImportCurrencies(ctx context.Context) (int, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyRefresherSvc
}
