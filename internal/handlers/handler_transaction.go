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
	"github.com/google/uuid"
)

// transactionHandler handles purchase simulation, purchase and history requests.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers transaction routes on an authenticated group.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	txns := rg.Group("/transactions")
	{
		txns.POST("/simulate", h.simulate)
		txns.POST("", h.purchase)
		txns.GET("", h.listTransactions)
		txns.GET("/:id", h.getTransaction)
	}
}

// isQuoteFailure reports errors caused by an unknown currency or an unusable rate.
func isQuoteFailure(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUpstreamUnavailable)
}

// simulate godoc
// @Summary Simulate a currency purchase
// @Description Calculates the fee and foreign amount without recording anything
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   simulation body dto.SimulateRequest true "Purchase to simulate"
// @Success 200 {object} dto.Response{data=dto.BreakdownResponse}
// @Failure 400 {object} dto.ErrorResponse "Currency not found or rate unavailable"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Security BearerAuth
// @Router /transactions/simulate [post]
func (h *transactionHandler) simulate(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.SimulateRequest
	if !bindJSON(c, &req) {
		return
	}

	breakdown, err := h.transactionService.Simulate(ctx, req.CurrencyCode, req.DecimalAmount())
	if err != nil {
		if isQuoteFailure(err) {
			logger.Info("Simulation rejected", slog.String("currency_code", req.CurrencyCode), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.Fail("Currency not found or rate unavailable"))
			return
		}
		logger.Error("Failed to simulate purchase", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to simulate transaction"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToBreakdownResponse(breakdown)))
}

// purchase godoc
// @Summary Purchase foreign currency
// @Description Records a completed purchase at the current rate
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   purchase body dto.PurchaseRequest true "Purchase details"
// @Success 201 {object} dto.Response{data=dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse "Failed to process transaction"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) purchase(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
		return
	}

	var req dto.PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.ProcessPurchase(ctx, userID, req.CurrencyCode, req.DecimalAmount(), req.Notes)
	if err != nil {
		if isQuoteFailure(err) {
			logger.Info("Purchase rejected", slog.String("currency_code", req.CurrencyCode), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.Fail("Failed to process transaction"))
			return
		}
		logger.Error("Failed to record purchase", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to process transaction"))
		return
	}

	logger.Info("Purchase recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "Transaction completed successfully",
		Data:    dto.ToTransactionResponse(txn),
	})
}

// listTransactions godoc
// @Summary List the caller's transactions
// @Description Newest first, with optional filters
// @Tags transactions
// @Produce  json
// @Param   page query int false "Page number (default 1)"
// @Param   per_page query int false "Items per page (default 10, max 100)"
// @Param   currency_code query string false "Currency code"
// @Param   status query string false "pending, completed, failed or refunded"
// @Param   from_date query string false "YYYY-MM-DD"
// @Param   to_date query string false "YYYY-MM-DD"
// @Success 200 {object} dto.Response{data=dto.TransactionPageResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ValidationErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
		return
	}

	var query dto.ListTransactionsQuery
	if !bindQuery(c, &query) {
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: validationFailedMessage,
			Errors:  map[string][]string{"date": {err.Error()}},
		})
		return
	}

	page, err := h.transactionService.ListForUser(ctx, userID, filter, query.Page, query.PerPage)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, dto.Fail(err.Error()))
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list transactions"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToTransactionPageResponse(page)))
}

// getTransaction godoc
// @Summary Get one of the caller's transactions
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.Response{data=dto.TransactionResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	transactionID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("transaction_id", transactionID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthenticated."))
		return
	}

	if _, err := uuid.Parse(transactionID); err != nil {
		c.JSON(http.StatusNotFound, dto.Fail("Transaction not found"))
		return
	}

	txn, err := h.transactionService.GetTransaction(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Transaction not found"))
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve transaction"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToTransactionResponse(txn)))
}
