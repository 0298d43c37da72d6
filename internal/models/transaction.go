package models

import "github.com/shopspring/decimal"

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	CurrencyID    string          `db:"currency_id"`
	Amount        decimal.Decimal `db:"amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	ForeignAmount decimal.Decimal `db:"foreign_amount"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	FeePercentage decimal.Decimal `db:"fee_percentage"`
	FeeAmount     decimal.Decimal `db:"fee_amount"`
	Status        string          `db:"status"`
	Metadata      []byte          `db:"metadata"` // jsonb
	Notes         *string         `db:"notes"`
	ReferenceID   *string         `db:"reference_id"`
	AuditFields
}
