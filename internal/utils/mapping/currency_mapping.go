package mapping

import (
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/SscSPs/currency_purchase_api/internal/models"
)

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:    m.CurrencyID,
		Code:          m.Code,
		Name:          m.Name,
		Symbol:        m.Symbol,
		ExchangeRate:  m.ExchangeRate,
		RateUpdatedAt: m.RateUpdatedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}

// ToCurrencySummaries projects currencies onto the cached list shape.
func ToCurrencySummaries(cs []domain.Currency) []domain.CurrencySummary {
	out := make([]domain.CurrencySummary, len(cs))
	for i, c := range cs {
		out[i] = domain.CurrencySummary{Code: c.Code, Name: c.Name, ExchangeRate: c.ExchangeRate}
	}
	return out
}
