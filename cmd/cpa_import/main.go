// Command cpa_import loads the quote provider's currency list into the
// database and refreshes every stored rate. With -rates-only it skips the
// import and only refreshes rates.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/currency_purchase_api/internal/adapters/cache"
	"github.com/SscSPs/currency_purchase_api/internal/adapters/rateprovider"
	"github.com/SscSPs/currency_purchase_api/internal/core/services"
	"github.com/SscSPs/currency_purchase_api/internal/platform/config"
	"github.com/SscSPs/currency_purchase_api/internal/repositories/database/pgsql"
	"github.com/SscSPs/currency_purchase_api/pkg/database"
)

func main() {
	ratesOnly := flag.Bool("rates-only", false, "refresh stored rates without importing the currency list")
	migrate := flag.Bool("migrate", false, "apply pending migrations before importing")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline for the run")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, cfg, logger, *ratesOnly, *migrate); err != nil {
		logger.Error("Currency import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, ratesOnly, migrate bool) error {
	if migrate {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool, logger)

	repos := pgsql.NewRepositoryProvider(dbPool)
	provider := rateprovider.NewAwesomeAPIClient(cfg.RateProviderBaseURL, cfg.CurrencyImportURL, cfg.DefaultCurrency, cfg.RateProviderTimeout)
	// A process-local cache; the API servers' caches expire on their own.
	currencySvc := services.NewCurrencyService(repos.CurrencyRepo, cache.NewExpiringCache(cfg.CurrencyCacheDuration), provider)

	if ratesOnly {
		completed, err := currencySvc.RefreshExchangeRates(ctx)
		if err != nil {
			return err
		}
		logger.Info("Exchange rates refreshed", slog.Bool("completed", completed))
		return nil
	}

	imported, err := currencySvc.ImportCurrencies(ctx)
	if err != nil {
		return err
	}
	logger.Info("Currencies imported", slog.Int("count", imported))
	return nil
}
