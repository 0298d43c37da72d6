package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_purchase_api/internal/apperrors"
	portssvc "github.com/SscSPs/currency_purchase_api/internal/core/ports/services"
	"github.com/SscSPs/currency_purchase_api/internal/dto"
	"github.com/SscSPs/currency_purchase_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencyReaderSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencyReaderSvc) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencyReaderSvc) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/show/:code", h.showCurrency)
	}
}

// listCurrencies godoc
// @Summary List currencies
// @Description Retrieves every purchasable currency ordered by code
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.Response{data=[]dto.CurrencyListItem}
// @Failure 500 {object} dto.ErrorResponse "Failed to list currencies"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currencies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list currencies"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToCurrencyList(currencies)))
}

// showCurrency godoc
// @Summary Get a currency by code
// @Description Returns the currency and its latest exchange rate. The rate is
// @Description refreshed from the quote provider when the cache is cold.
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code (e.g., USD)"
// @Success 200 {object} dto.CurrencyShowResponse
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve currency"
// @Router /currencies/show/{code} [get]
func (h *currencyHandler) showCurrency(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("currency_code", code))

	// Resolved first so the stored currency reflects a just-persisted quote.
	rate, rateErr := h.currencyService.GetLatestRate(ctx, code)
	if rateErr != nil && !errors.Is(rateErr, apperrors.ErrNotFound) {
		logger.Warn("Latest rate lookup failed", slog.String("error", rateErr.Error()))
	}

	currency, err := h.currencyService.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Currency not found"))
			return
		}
		logger.Error("Failed to get currency by code from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve currency"))
		return
	}

	if rateErr != nil {
		rate = currency.ExchangeRate
	}

	c.JSON(http.StatusOK, dto.CurrencyShowResponse{
		Success:      true,
		Data:         *currency,
		ExchangeRate: rate,
	})
}
