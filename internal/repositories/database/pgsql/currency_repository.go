package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_purchase_api/internal/core/ports/repositories"
	"github.com/SscSPs/currency_purchase_api/internal/models"
	"github.com/SscSPs/currency_purchase_api/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PgxCurrencyRepository struct {
	BaseRepository
	now func() time.Time
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool DB) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_id, code, name, symbol, exchange_rate, rate_updated_at, created_at, updated_at, deleted_at`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.CurrencyID,
		&c.Code,
		&c.Name,
		&c.Symbol,
		&c.ExchangeRate,
		&c.RateUpdatedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	return c, err
}

// FindCurrencyByCode retrieves an active currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE code = $1 AND deleted_at IS NULL;
	`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all active currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE deleted_at IS NULL
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// ApplyQuote stores the quoted rate on the matching currency. An empty quote
// name keeps the stored name. A code with no row is a no-op.
func (r *PgxCurrencyRepository) ApplyQuote(ctx context.Context, quote domain.Quote) error {
	query := `
		UPDATE currencies
		SET exchange_rate = $2,
			name = COALESCE(NULLIF($3, ''), name),
			rate_updated_at = $4,
			updated_at = $4
		WHERE code = $1 AND deleted_at IS NULL;
	`
	if _, err := r.Pool.Exec(ctx, query, quote.Code, quote.Bid, quote.Name, r.now()); err != nil {
		return fmt.Errorf("failed to apply quote for %s: %w", quote.Code, err)
	}
	return nil
}

// UpsertCurrency inserts a currency with the default rate, or renames an
// existing one. A soft-removed currency is restored.
func (r *PgxCurrencyRepository) UpsertCurrency(ctx context.Context, code, name string) error {
	query := `
		INSERT INTO currencies (currency_id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at,
			deleted_at = NULL;
	`
	if _, err := r.Pool.Exec(ctx, query, uuid.NewString(), code, name, r.now()); err != nil {
		return fmt.Errorf("failed to upsert currency %s: %w", code, err)
	}
	return nil
}
