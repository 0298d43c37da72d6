package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
)

// TransactionReader defines read operations for purchase records
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its currency. When
	// userID is non-empty the transaction must belong to that user.
	FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)

	// ListTransactionsByUser returns one page of a user's transactions, newest
	// first, along with the total number of matching rows.
	ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error)
}

// TransactionWriter defines write operations for purchase records
type TransactionWriter interface {
	// CreateTransaction inserts a transaction atomically.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus persists a new status together with the merged metadata.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, metadata domain.Metadata, updatedAt time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
