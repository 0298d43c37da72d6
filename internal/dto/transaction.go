package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/SscSPs/currency_purchase_api/internal/utils"
	"github.com/shopspring/decimal"
)

// MinimumPurchaseAmount is the smallest amount accepted by simulate and purchase.
const MinimumPurchaseAmount = 50

// SimulateRequest is the payload of POST /transactions/simulate.
type SimulateRequest struct {
	CurrencyCode string  `json:"currency_code" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gte=50"`
}

// PurchaseRequest is the payload of POST /transactions.
type PurchaseRequest struct {
	CurrencyCode string  `json:"currency_code" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gte=50"`
	Notes        *string `json:"notes" binding:"omitempty,max=255"`
}

// DecimalAmount returns the amount as a decimal.
func (r SimulateRequest) DecimalAmount() decimal.Decimal {
	return decimal.NewFromFloat(r.Amount)
}

// DecimalAmount returns the amount as a decimal.
func (r PurchaseRequest) DecimalAmount() decimal.Decimal {
	return decimal.NewFromFloat(r.Amount)
}

// ListTransactionsQuery binds the query string of GET /transactions.
type ListTransactionsQuery struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PerPage      int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	CurrencyCode string `form:"currency_code" binding:"omitempty,max=10"`
	Status       string `form:"status" binding:"omitempty,oneof=pending completed failed refunded"`
	FromDate     string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate       string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilter converts the bound query into a domain filter.
func (q ListTransactionsQuery) ToFilter() (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		CurrencyCode: strings.ToUpper(strings.TrimSpace(q.CurrencyCode)),
		Status:       domain.TransactionStatus(q.Status),
	}
	if q.FromDate != "" {
		from, err := time.Parse(time.DateOnly, q.FromDate)
		if err != nil {
			return filter, fmt.Errorf("invalid from_date: %w", err)
		}
		filter.FromDate = &from
	}
	if q.ToDate != "" {
		to, err := time.Parse(time.DateOnly, q.ToDate)
		if err != nil {
			return filter, fmt.Errorf("invalid to_date: %w", err)
		}
		filter.ToDate = &to
	}
	return filter, nil
}

// BreakdownResponse renders a fee breakdown with monetary fields fixed to two places.
type BreakdownResponse struct {
	Amount        string `json:"amount"`
	ExchangeRate  string `json:"exchange_rate"`
	FeePercentage string `json:"fee_percentage"`
	FeeAmount     string `json:"fee_amount"`
	ForeignAmount string `json:"foreign_amount"`
	TotalAmount   string `json:"total_amount"`
}

func ToBreakdownResponse(b *domain.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Amount:        b.Amount.String(),
		ExchangeRate:  b.ExchangeRate.String(),
		FeePercentage: b.FeePercentage.String(),
		FeeAmount:     utils.FormatMoney(b.FeeAmount),
		ForeignAmount: utils.FormatMoney(b.ForeignAmount),
		TotalAmount:   utils.FormatMoney(b.TotalAmount),
	}
}

// TransactionCurrency is the currency embedded in a transaction response.
type TransactionCurrency struct {
	ID     string  `json:"id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol *string `json:"symbol,omitempty"`
}

// TransactionResponse is a transaction together with its currency.
type TransactionResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	CurrencyID    string               `json:"currency_id"`
	Amount        string               `json:"amount"`
	AmountPaid    string               `json:"amount_paid"`
	ForeignAmount string               `json:"foreign_amount"`
	ExchangeRate  string               `json:"exchange_rate"`
	FeePercentage string               `json:"fee_percentage"`
	FeeAmount     string               `json:"fee_amount"`
	Status        string               `json:"status"`
	Metadata      domain.Metadata      `json:"metadata"`
	Notes         *string              `json:"notes"`
	ReferenceID   *string              `json:"reference_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Currency      *TransactionCurrency `json:"currency,omitempty"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.TransactionID,
		UserID:        t.UserID,
		CurrencyID:    t.CurrencyID,
		Amount:        utils.FormatMoney(t.Amount),
		AmountPaid:    utils.FormatMoney(t.AmountPaid),
		ForeignAmount: utils.FormatMoney(t.ForeignAmount),
		ExchangeRate:  t.ExchangeRate.String(),
		FeePercentage: t.FeePercentage.StringFixed(2),
		FeeAmount:     utils.FormatMoney(t.FeeAmount),
		Status:        string(t.Status),
		Metadata:      t.Metadata,
		Notes:         t.Notes,
		ReferenceID:   t.ReferenceID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Currency != nil {
		resp.Currency = &TransactionCurrency{
			ID:     t.Currency.CurrencyID,
			Code:   t.Currency.Code,
			Name:   t.Currency.Name,
			Symbol: t.Currency.Symbol,
		}
	}
	return resp
}

// PageMeta describes an offset page.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// TransactionPageResponse is the data payload of GET /transactions.
type TransactionPageResponse struct {
	Items []TransactionResponse `json:"items"`
	Meta  PageMeta              `json:"meta"`
}

func ToTransactionPageResponse(p *domain.TransactionPage) TransactionPageResponse {
	items := make([]TransactionResponse, len(p.Items))
	for i := range p.Items {
		items[i] = ToTransactionResponse(&p.Items[i])
	}
	return TransactionPageResponse{
		Items: items,
		Meta: PageMeta{
			CurrentPage: p.Page,
			PerPage:     p.PerPage,
			Total:       p.Total,
			LastPage:    p.LastPage(),
		},
	}
}
