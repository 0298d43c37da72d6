package dto

import (
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyListItem is one entry of GET /currencies.
type CurrencyListItem struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// CurrencyShowResponse is the body of GET /currencies/show/{code}.
type CurrencyShowResponse struct {
	Success      bool            `json:"success"`
	Data         domain.Currency `json:"data"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

func ToCurrencyList(summaries []domain.CurrencySummary) []CurrencyListItem {
	items := make([]CurrencyListItem, len(summaries))
	for i, s := range summaries {
		items[i] = CurrencyListItem{Code: s.Code, Name: s.Name, ExchangeRate: s.ExchangeRate}
	}
	return items
}
