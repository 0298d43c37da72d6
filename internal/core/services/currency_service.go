package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	"github.com/SscSPs/currency_purchase_api/internal/core/domain"
	portscache "github.com/SscSPs/currency_purchase_api/internal/core/ports/cache"
	portsprov "github.com/SscSPs/currency_purchase_api/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_purchase_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/platform/metrics"
	"github.com/SscSPs/currency_purchase_api/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const currencyListCacheKey = "currencies"

func rateCacheKey(code string) string {
	return "exchange_rate_" + code
}

// currencyService owns the currency directory and its rate cache.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	cache        portscache.Cache
	provider     portsprov.RateProvider
}

// NewCurrencyService creates a currency service backed by repo, sharing cache
// for the list and per-code rates.
func NewCurrencyService(repo portsrepo.CurrencyRepositoryFacade, cache portscache.Cache, provider portsprov.RateProvider) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: repo,
		cache:        cache,
		provider:     provider,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.CurrencySummary, error) {
	if cached, ok := s.cache.Get(currencyListCacheKey); ok {
		if summaries, ok := cached.([]domain.CurrencySummary); ok {
			metrics.CacheLookup(metrics.CacheKindList, true)
			return summaries, nil
		}
	}
	metrics.CacheLookup(metrics.CacheKindList, false)

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}

	summaries := mapping.ToCurrencySummaries(currencies)
	s.cache.Set(currencyListCacheKey, summaries)
	return summaries, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, normalizeCode(code))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// GetLatestRate serves the per-code cache, then the provider, then the stored rate.
// Whatever is produced is cached for the cache window, fallbacks included.
func (s *currencyService) GetLatestRate(ctx context.Context, code string) (decimal.Decimal, error) {
	code = normalizeCode(code)
	key := rateCacheKey(code)

	if cached, ok := s.cache.Get(key); ok {
		if rate, ok := cached.(decimal.Decimal); ok {
			metrics.CacheLookup(metrics.CacheKindRate, true)
			return rate, nil
		}
	}
	metrics.CacheLookup(metrics.CacheKindRate, false)

	quote, err := s.provider.FetchQuote(ctx, code)
	if err == nil {
		if perr := s.currencyRepo.ApplyQuote(ctx, *quote); perr != nil {
			s.LogError(ctx, perr, "Failed to persist fresh rate", slog.String("currency_code", code))
		}
		s.cache.Set(key, quote.Bid)
		return quote.Bid, nil
	}

	s.LogWarn(ctx, "Quote provider failed, falling back to stored rate",
		slog.String("currency_code", code),
		slog.String("error", err.Error()))

	currency, ferr := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if ferr != nil {
		if errors.Is(ferr, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to load stored rate for %s: %w", code, ferr)
	}
	if !currency.HasRefreshedRate() {
		s.LogWarn(ctx, "Stored rate was never refreshed; using placeholder",
			slog.String("currency_code", code),
			slog.String("rate", currency.ExchangeRate.String()))
	}

	s.cache.Set(key, currency.ExchangeRate)
	return currency.ExchangeRate, nil
}

// RefreshExchangeRates requests a quote for each stored currency in order.
// A provider error for one currency skips it; a connectivity failure stops the
// batch and reports false. Updates already applied are kept.
func (s *currencyService) RefreshExchangeRates(ctx context.Context) (bool, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load currencies for refresh")
		return false, fmt.Errorf("failed to load currencies for refresh: %w", err)
	}

	updated := 0
	for _, currency := range currencies {
		quote, err := s.provider.FetchQuote(ctx, currency.Code)
		if err != nil {
			if errors.Is(err, apperrors.ErrUpstreamUnreachable) {
				s.LogError(ctx, err, "Quote provider unreachable, aborting refresh",
					slog.String("currency_code", currency.Code),
					slog.Int("updated", updated))
				return false, nil
			}
			s.LogWarn(ctx, "Skipping currency after provider failure",
				slog.String("currency_code", currency.Code),
				slog.String("error", err.Error()))
			continue
		}

		if err := s.currencyRepo.ApplyQuote(ctx, *quote); err != nil {
			s.LogError(ctx, err, "Failed to store refreshed rate", slog.String("currency_code", currency.Code))
			return false, fmt.Errorf("failed to store rate for %s: %w", currency.Code, err)
		}
		updated++
	}

	s.cache.Delete(currencyListCacheKey)
	s.LogInfo(ctx, "Exchange rates refreshed", slog.Int("updated", updated), slog.Int("total", len(currencies)))
	return true, nil
}

// ImportCurrencies upserts every currency the provider quotes against the
// counter currency, then refreshes their rates.
func (s *currencyService) ImportCurrencies(ctx context.Context) (int, error) {
	available, err := s.provider.ListAvailable(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch available currencies")
		return 0, fmt.Errorf("failed to fetch available currencies: %w", err)
	}

	imported := 0
	for _, c := range available {
		if err := s.currencyRepo.UpsertCurrency(ctx, normalizeCode(c.Code), c.Name); err != nil {
			s.LogError(ctx, err, "Failed to import currency", slog.String("currency_code", c.Code))
			return imported, fmt.Errorf("failed to import currency %s: %w", c.Code, err)
		}
		imported++
	}
	s.cache.Delete(currencyListCacheKey)

	ok, err := s.RefreshExchangeRates(ctx)
	if err != nil {
		return imported, err
	}
	if !ok {
		s.LogWarn(ctx, "Currencies imported but rate refresh was aborted", slog.Int("imported", imported))
	}
	return imported, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
