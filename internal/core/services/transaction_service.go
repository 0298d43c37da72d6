package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_purchase_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/platform/metrics"
	"github.com/SscSPs/currency_purchase_api/internal/utils"
	"github.com/SscSPs/currency_purchase_api/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const referenceIDLength = 15

var hundred = decimal.NewFromInt(100)

// transactionService calculates fee breakdowns and records purchases.
type transactionService struct {
	BaseService
	txnRepo       portsrepo.TransactionRepositoryFacade
	currencySvc   portssvc.CurrencyReaderSvc
	feePercentage decimal.Decimal
	now           func() time.Time
	newReference  func() (string, error)
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithReferenceGenerator overrides how external reference IDs are produced.
func WithReferenceGenerator(gen func() (string, error)) TransactionServiceOption {
	return func(s *transactionService) {
		s.newReference = gen
	}
}

// NewTransactionService creates a transaction service charging feePercentage on every purchase.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, feePercentage decimal.Decimal, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:       repo,
		currencySvc:   currencySvc,
		feePercentage: feePercentage,
		now:           time.Now,
		newReference:  newNanoReference,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func newNanoReference() (string, error) {
	gen, err := nanoid.Standard(referenceIDLength)
	if err != nil {
		return "", err
	}
	return gen(), nil
}

// Calculate returns the fee breakdown for amount at rate. Only the fee, total
// and foreign amount are rounded.
func (s *transactionService) Calculate(amount, rate decimal.Decimal) (domain.Breakdown, error) {
	if !rate.IsPositive() {
		return domain.Breakdown{}, fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrUpstreamUnavailable, rate.String())
	}

	fee := utils.RoundMoney(amount.Mul(s.feePercentage).Div(hundred))
	return domain.Breakdown{
		Amount:        amount,
		ExchangeRate:  rate,
		FeePercentage: s.feePercentage,
		FeeAmount:     fee,
		ForeignAmount: utils.RoundMoney(amount.Div(rate)),
		TotalAmount:   utils.RoundMoney(amount.Add(fee)),
	}, nil
}

// resolve finds the currency and the rate to price it at.
func (s *transactionService) resolve(ctx context.Context, code string) (*domain.Currency, decimal.Decimal, error) {
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, decimal.Zero, err
	}

	rate, err := s.currencySvc.GetLatestRate(ctx, currency.Code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, decimal.Zero, err
		}
		rate = currency.ExchangeRate
	}
	return currency, rate, nil
}

func (s *transactionService) Simulate(ctx context.Context, currencyCode string, amount decimal.Decimal) (*domain.Breakdown, error) {
	_, rate, err := s.resolve(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.Calculate(amount, rate)
	if err != nil {
		s.LogWarn(ctx, "Cannot price simulation", slog.String("currency_code", currencyCode), slog.String("error", err.Error()))
		return nil, err
	}
	return &breakdown, nil
}

func (s *transactionService) ProcessPurchase(ctx context.Context, userID, currencyCode string, amount decimal.Decimal, notes *string) (*domain.Transaction, error) {
	currency, rate, err := s.resolve(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.Calculate(amount, rate)
	if err != nil {
		s.LogWarn(ctx, "Cannot price purchase", slog.String("currency_code", currency.Code), slog.String("error", err.Error()))
		return nil, err
	}

	referenceID, err := s.newReference()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate reference ID")
		return nil, fmt.Errorf("failed to generate reference id: %w", err)
	}

	now := s.now().UTC()
	metadata := domain.Metadata{}
	metadata.SetTime(domain.MetaCalculatedAt, now)
	metadata.SetString(domain.MetaCurrencyCode, currency.Code)
	metadata.SetString(domain.MetaCurrencyName, currency.Name)

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CurrencyID:    currency.CurrencyID,
		Amount:        breakdown.Amount,
		AmountPaid:    breakdown.TotalAmount,
		ForeignAmount: breakdown.ForeignAmount,
		ExchangeRate:  breakdown.ExchangeRate,
		FeePercentage: breakdown.FeePercentage,
		FeeAmount:     breakdown.FeeAmount,
		Status:        domain.StatusCompleted,
		Metadata:      metadata,
		Notes:         notes,
		ReferenceID:   &referenceID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Currency: currency,
	}

	if err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to record purchase",
			slog.String("user_id", userID),
			slog.String("currency_code", currency.Code))
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	metrics.Purchases.WithLabelValues(currency.Code).Inc()
	s.LogInfo(ctx, "Purchase recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("currency_code", currency.Code),
		slog.String("amount_paid", txn.AmountPaid.String()))
	return &txn, nil
}

func (s *transactionService) ListForUser(ctx context.Context, userID string, filter domain.TransactionFilter, page, perPage int) (*domain.TransactionPage, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, filter.Status)
	}

	page, perPage = pagination.Normalize(page, perPage)
	items, total, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter, perPage, pagination.Offset(page, perPage))
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if items == nil {
		items = []domain.Transaction{}
	}

	return &domain.TransactionPage{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}, nil
}

// GetTransaction returns the transaction; with a userID it must also belong to that user.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	if userID != "" && txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// UpdateStatus rejects unknown statuses without writing. On success txn is
// updated in place with the new status and merged metadata.
func (s *transactionService) UpdateStatus(ctx context.Context, txn *domain.Transaction, status domain.TransactionStatus, extra domain.Metadata) (bool, error) {
	if !status.IsValid() {
		s.LogWarn(ctx, "Rejected unknown transaction status",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("status", string(status)))
		return false, nil
	}
	if err := extra.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.now().UTC()
	metadata := txn.Metadata.Merge(extra)
	metadata.SetString(domain.MetaPreviousStatus, string(txn.Status))
	metadata.SetTime(domain.MetaStatusUpdatedAt, now)

	if err := s.txnRepo.UpdateTransactionStatus(ctx, txn.TransactionID, status, metadata, now); err != nil {
		s.LogError(ctx, err, "Failed to update transaction status",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("status", string(status)))
		return false, err
	}

	txn.Status = status
	txn.Metadata = metadata
	txn.UpdatedAt = now
	return true, nil
}
