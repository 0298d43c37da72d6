package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	"github.com/SscSPs/currency_purchase_api/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction,
// encoding metadata as JSON.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	meta := d.Metadata
	if meta == nil {
		meta = domain.Metadata{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		CurrencyID:    d.CurrencyID,
		Amount:        d.Amount,
		AmountPaid:    d.AmountPaid,
		ForeignAmount: d.ForeignAmount,
		ExchangeRate:  d.ExchangeRate,
		FeePercentage: d.FeePercentage,
		FeeAmount:     d.FeeAmount,
		Status:        string(d.Status),
		Metadata:      raw,
		Notes:         d.Notes,
		ReferenceID:   d.ReferenceID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	meta := domain.Metadata{}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &meta); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode metadata for transaction %s: %w", m.TransactionID, err)
		}
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		CurrencyID:    m.CurrencyID,
		Amount:        m.Amount,
		AmountPaid:    m.AmountPaid,
		ForeignAmount: m.ForeignAmount,
		ExchangeRate:  m.ExchangeRate,
		FeePercentage: m.FeePercentage,
		FeeAmount:     m.FeeAmount,
		Status:        domain.TransactionStatus(m.Status),
		Metadata:      meta,
		Notes:         m.Notes,
		ReferenceID:   m.ReferenceID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}
