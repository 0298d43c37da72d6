package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultExchangeRate is the column default for a currency that has never been refreshed.
var DefaultExchangeRate = decimal.NewFromInt(1)

// Currency represents a supported foreign currency priced against the counter currency.
type Currency struct {
	CurrencyID   string          `json:"id"`
	Code         string          `json:"code"` // Unique, e.g. "USD"
	Name         string          `json:"name"`
	Symbol       *string         `json:"symbol,omitempty"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	// RateUpdatedAt is nil until a quote has been applied at least once.
	RateUpdatedAt *time.Time `json:"rate_updated_at,omitempty"`
	AuditFields
}

// HasRefreshedRate reports whether ExchangeRate came from the quote provider
// rather than from the column default.
func (c Currency) HasRefreshedRate() bool {
	return c.RateUpdatedAt != nil
}

// CurrencySummary is the cached list projection of a currency.
type CurrencySummary struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// Quote is a single bid price returned by the quote provider.
type Quote struct {
	Code string
	Name string
	Bid  decimal.Decimal
}

// AvailableCurrency is a currency pair advertised by the quote provider.
type AvailableCurrency struct {
	Code string
	Name string
}
