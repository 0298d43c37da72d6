package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a purchase.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusRefunded  TransactionStatus = "refunded"
)

// IsValid reports whether s is one of the known statuses.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Reserved metadata keys.
const (
	MetaCalculatedAt    = "calculated_at"
	MetaCurrencyCode    = "currency_code"
	MetaCurrencyName    = "currency_name"
	MetaPreviousStatus  = "previous_status"
	MetaStatusUpdatedAt = "status_updated_at"
)

// Metadata annotates a transaction. Values are strings, numbers, or
// timestamps; timestamps are stored as RFC 3339 strings.
type Metadata map[string]any

// SetString stores a string value.
func (m Metadata) SetString(key, value string) {
	m[key] = value
}

// SetTime stores t as an RFC 3339 string.
func (m Metadata) SetTime(key string, t time.Time) {
	m[key] = t.Format(time.RFC3339)
}

// SetNumber stores a numeric value.
func (m Metadata) SetNumber(key string, value float64) {
	m[key] = value
}

// Validate rejects values that are not strings, numbers or timestamps.
func (m Metadata) Validate() error {
	for k, v := range m {
		switch v.(type) {
		case string, float64, float32, int, int32, int64, time.Time, decimal.Decimal:
		default:
			return fmt.Errorf("metadata key %q has unsupported value type %T", k, v)
		}
	}
	return nil
}

// Merge returns a copy of m with every entry of other applied on top.
// time.Time values are normalised to RFC 3339 strings.
func (m Metadata) Merge(other Metadata) Metadata {
	out := make(Metadata, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		if t, ok := v.(time.Time); ok {
			out.SetTime(k, t)
			continue
		}
		out[k] = v
	}
	return out
}

// Transaction is a recorded currency purchase. ExchangeRate, FeePercentage and
// FeeAmount are snapshots taken at creation and are never recomputed.
type Transaction struct {
	TransactionID string            `json:"id"`
	UserID        string            `json:"user_id"`
	CurrencyID    string            `json:"currency_id"`
	Amount        decimal.Decimal   `json:"amount"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	ForeignAmount decimal.Decimal   `json:"foreign_amount"`
	ExchangeRate  decimal.Decimal   `json:"exchange_rate"`
	FeePercentage decimal.Decimal   `json:"fee_percentage"`
	FeeAmount     decimal.Decimal   `json:"fee_amount"`
	Status        TransactionStatus `json:"status"`
	Metadata      Metadata          `json:"metadata"`
	Notes         *string           `json:"notes"`
	ReferenceID   *string           `json:"reference_id"`
	AuditFields

	// Currency is populated on reads that join the currencies table.
	Currency *Currency `json:"currency,omitempty"`
}

// Breakdown is the fee calculation for a purchase amount at a given rate.
type Breakdown struct {
	Amount        decimal.Decimal `json:"amount"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	ForeignAmount decimal.Decimal `json:"foreign_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// TransactionFilter narrows a user's transaction listing. Zero values are ignored.
// FromDate and ToDate are inclusive calendar dates.
type TransactionFilter struct {
	CurrencyCode string
	Status       TransactionStatus
	FromDate     *time.Time
	ToDate       *time.Time
}

// TransactionPage is one offset page of a user's transactions.
type TransactionPage struct {
	Items   []Transaction
	Page    int
	PerPage int
	Total   int
}

// LastPage returns the index of the last page, never less than 1.
func (p TransactionPage) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}
