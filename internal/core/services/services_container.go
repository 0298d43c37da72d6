package services

import (
	portscache "github.com/SscSPs/currency_purchase_api/internal/core/ports/cache"
	portsprov "github.com/SscSPs/currency_purchase_api/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_purchase_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// currencyCache holds the currency list and per-code rates; revocations holds
// logged-out token IDs.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider portsprov.RateProvider, currencyCache, revocations portscache.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo, currencyCache, provider)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Currency, cfg.ServiceFeePercentage)
	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg, revocations)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
