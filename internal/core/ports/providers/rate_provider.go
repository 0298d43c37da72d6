package providers

import (
	"context"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
)

// RateProvider fetches quotes for a foreign currency against the counter currency.
//
// FetchQuote makes exactly one attempt. Errors wrap apperrors.ErrUpstreamUnreachable
// for connection-level failures and apperrors.ErrUpstreamUnavailable otherwise.
type RateProvider interface {
	FetchQuote(ctx context.Context, code string) (*domain.Quote, error)

	// ListAvailable returns the currencies quoted against the counter currency.
	ListAvailable(ctx context.Context) ([]domain.AvailableCurrency, error)
}
