package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_purchase_api/internal/core/ports/repositories"
	"github.com/SscSPs/currency_purchase_api/internal/models"
	"github.com/SscSPs/currency_purchase_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for purchase records.
func newPgxTransactionRepository(pool DB) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionWithCurrencyColumns = `
	t.transaction_id, t.user_id, t.currency_id, t.amount, t.amount_paid, t.foreign_amount,
	t.exchange_rate, t.fee_percentage, t.fee_amount, t.status, t.metadata, t.notes,
	t.reference_id, t.created_at, t.updated_at, t.deleted_at,
	c.currency_id, c.code, c.name, c.symbol, c.exchange_rate, c.rate_updated_at,
	c.created_at, c.updated_at, c.deleted_at`

func scanTransactionWithCurrency(row pgx.Row) (*domain.Transaction, error) {
	var (
		t models.Transaction
		c models.Currency
	)
	err := row.Scan(
		&t.TransactionID, &t.UserID, &t.CurrencyID, &t.Amount, &t.AmountPaid, &t.ForeignAmount,
		&t.ExchangeRate, &t.FeePercentage, &t.FeeAmount, &t.Status, &t.Metadata, &t.Notes,
		&t.ReferenceID, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
		&c.CurrencyID, &c.Code, &c.Name, &c.Symbol, &c.ExchangeRate, &c.RateUpdatedAt,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	txn, err := mapping.ToDomainTransaction(t)
	if err != nil {
		return nil, err
	}
	curr := mapping.ToDomainCurrency(c)
	txn.Currency = &curr
	return &txn, nil
}

// CreateTransaction inserts a purchase inside its own database transaction.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			transaction_id, user_id, currency_id, amount, amount_paid, foreign_amount,
			exchange_rate, fee_percentage, fee_amount, status, metadata, notes,
			reference_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			modelTxn.TransactionID,
			modelTxn.UserID,
			modelTxn.CurrencyID,
			modelTxn.Amount,
			modelTxn.AmountPaid,
			modelTxn.ForeignAmount,
			modelTxn.ExchangeRate,
			modelTxn.FeePercentage,
			modelTxn.FeeAmount,
			modelTxn.Status,
			modelTxn.Metadata,
			modelTxn.Notes,
			modelTxn.ReferenceID,
			modelTxn.CreatedAt,
			modelTxn.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
		}
		return nil
	})
}

// FindTransactionByID retrieves a transaction joined with its currency.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionWithCurrencyColumns + `
		FROM transactions t
		JOIN currencies c ON c.currency_id = t.currency_id
		WHERE t.transaction_id = $1 AND t.deleted_at IS NULL`
	args := []any{transactionID}
	if userID != "" {
		query += ` AND t.user_id = $2`
		args = append(args, userID)
	}

	txn, err := scanTransactionWithCurrency(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// buildTransactionFilter renders the WHERE clause shared by the page and count queries.
func buildTransactionFilter(userID string, filter domain.TransactionFilter) (string, []any) {
	conds := []string{"t.user_id = $1", "t.deleted_at IS NULL"}
	args := []any{userID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.CurrencyCode != "" {
		add("c.code = $%d", strings.ToUpper(filter.CurrencyCode))
	}
	if filter.Status != "" {
		add("t.status = $%d", string(filter.Status))
	}
	if filter.FromDate != nil {
		add("t.created_at::date >= $%d::date", filter.FromDate.Format(time.DateOnly))
	}
	if filter.ToDate != nil {
		add("t.created_at::date <= $%d::date", filter.ToDate.Format(time.DateOnly))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListTransactionsByUser returns a page of the user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	where, args := buildTransactionFilter(userID, filter)

	countQuery := `SELECT COUNT(*) FROM transactions t JOIN currencies c ON c.currency_id = t.currency_id` + where
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %s: %w", userID, err)
	}

	pageArgs := append(append([]any{}, args...), limit, offset)
	query := `SELECT ` + transactionWithCurrencyColumns + `
		FROM transactions t
		JOIN currencies c ON c.currency_id = t.currency_id` + where +
		fmt.Sprintf(" ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := r.Pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransactionWithCurrency(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, total, nil
}

// UpdateTransactionStatus sets the status and replaces the metadata document.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, metadata domain.Metadata, updatedAt time.Time) error {
	modelTxn, err := mapping.ToModelTransaction(domain.Transaction{TransactionID: transactionID, Status: status, Metadata: metadata})
	if err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET status = $2, metadata = $3, updated_at = $4
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, modelTxn.Status, modelTxn.Metadata, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
