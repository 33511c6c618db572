package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledger entries, payments
// and party accounts.
type ledgerHandler struct {
	recorderService portssvc.RecorderSvcFacade
	partyService    portssvc.PartySvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(rs portssvc.RecorderSvcFacade, ps portssvc.PartySvcFacade) *ledgerHandler {
	return &ledgerHandler{
		recorderService: rs,
		partyService:    ps,
	}
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, recorderService portssvc.RecorderSvcFacade, partyService portssvc.PartySvcFacade) {
	h := newLedgerHandler(recorderService, partyService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordEntry)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransactionByID)
		transactions.POST("/:transactionID/reverse", h.reverseEntry)
	}
	rg.GET("/payments", h.getPaymentsByReference)

	parties := rg.Group("/parties/:kind/:partyID")
	{
		parties.GET("/balance", h.getPartyBalance)
		parties.GET("/statements", h.listPartyStatements)
	}
}

func (h *ledgerHandler) recordEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var req dto.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetUserIDFromContext(c)
	logger.Info("Received request to record entry",
		slog.String("type", req.Type),
		slog.String("currency_code", req.CurrencyCode),
		slog.String("amount", req.Amount.String()))

	txn, err := h.recorderService.RecordEntry(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAmountNotPositive),
			errors.Is(err, services.ErrAmountZero),
			errors.Is(err, services.ErrUnsettledExceedsAmount),
			errors.Is(err, services.ErrUnsettledNeedsParty),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected invalid entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Entry refers to unknown currency or drawer", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNoBaseCurrency):
			logger.Warn("Entry with unsettled portion but no base currency configured")
			c.JSON(http.StatusConflict, gin.H{"error": "No base currency configured"})
		case errors.Is(err, apperrors.ErrTransient):
			logger.Warn("Entry kept conflicting, asking caller to retry", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Entry conflicted with concurrent activity, retry"})
		default:
			logger.Error("Failed to record entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record entry"})
		}
		return
	}

	logger.Info("Entry recorded successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	transactionID := c.Param("transactionID")
	creatorUserID := middleware.GetUserIDFromContext(c)

	logger.Info("Received request to reverse entry", slog.String("transaction_id", transactionID))

	reversal, err := h.recorderService.ReverseEntry(c.Request.Context(), tenantID, transactionID, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Entry not found for reversal", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrAlreadyReversed),
			errors.Is(err, services.ErrReversalOfReversal),
			errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Reversal rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTransient):
			logger.Warn("Reversal kept conflicting, asking caller to retry", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Reversal conflicted with concurrent activity, retry"})
		default:
			logger.Error("Failed to reverse entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Entry reversed successfully",
		slog.String("transaction_id", transactionID),
		slog.String("reversal_id", reversal.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(reversal))
}

func (h *ledgerHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	transactionID := c.Param("transactionID")

	txn, err := h.recorderService.GetTransactionByID(c.Request.Context(), tenantID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.recorderService.ListTransactions(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid transaction listing parameters", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Items:     dto.ToTransactionResponses(txns),
		NextToken: nextToken,
	})
}

func (h *ledgerHandler) getPaymentsByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	refKind := c.Query("referenceKind")
	refID := c.Query("referenceID")
	if refKind == "" || refID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referenceKind and referenceID are required"})
		return
	}

	ref := domain.Reference{Kind: domain.ReferenceKind(refKind), ID: &refID}
	payments, err := h.recorderService.GetPaymentsByReference(c.Request.Context(), tenantID, ref)
	if err != nil {
		logger.Error("Failed to get payments by reference", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

func (h *ledgerHandler) getPartyBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	party, err := domain.ParsePartyRef(c.Param("kind"), c.Param("partyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.partyService.GetBalance(c.Request.Context(), tenantID, party)
	if err != nil {
		logger.Error("Failed to get party balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve party balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyBalanceResponse(balance))
}

func (h *ledgerHandler) listPartyStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	party, err := domain.ParsePartyRef(c.Param("kind"), c.Param("partyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	nextToken := c.Query("nextToken")

	statements, token, err := h.partyService.ListStatements(c.Request.Context(), tenantID, party, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid statement listing parameters", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list party statements", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list statements"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.StatementListResponse{
		Items:     dto.ToStatementResponses(statements),
		NextToken: token,
	})
}
