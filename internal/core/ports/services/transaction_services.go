package services

import (
	"context"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionCalculatorSvc computes fee breakdowns without touching the store
type TransactionCalculatorSvc interface {
	// Calculate applies the configured fee percentage to amount at rate.
	Calculate(amount, rate decimal.Decimal) (domain.Breakdown, error)

	// Simulate resolves the currency's current rate and calculates a breakdown.
	Simulate(ctx context.Context, currencyCode string, amount decimal.Decimal) (*domain.Breakdown, error)
}

// TransactionReaderSvc defines read operations for purchase records
type TransactionReaderSvc interface {
	// ListForUser returns one page of the user's transactions, newest first.
	ListForUser(ctx context.Context, userID string, filter domain.TransactionFilter, page, perPage int) (*domain.TransactionPage, error)

	// GetTransaction returns a transaction; a non-empty userID restricts the
	// lookup to that user's transactions.
	GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for purchase records
type TransactionWriterSvc interface {
	// ProcessPurchase records a completed purchase for userID.
	ProcessPurchase(ctx context.Context, userID, currencyCode string, amount decimal.Decimal, notes *string) (*domain.Transaction, error)

	// UpdateStatus moves txn to status, merging extra into its metadata.
	UpdateStatus(ctx context.Context, txn *domain.Transaction, status domain.TransactionStatus, extra domain.Metadata) (bool, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionCalculatorSvc
	TransactionReaderSvc
	TransactionWriterSvc
}
