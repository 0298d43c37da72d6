package pgsql

import (
	portsrepo "github.com/SscSPs/currency_purchase_api/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository onto the given pool.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:    newPgxCurrencyRepository(db),
		TransactionRepo: newPgxTransactionRepository(db),
		UserRepo:        newPgxUserRepository(db),
	}
}
