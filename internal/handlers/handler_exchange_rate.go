package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to the rate timeline
// and currency conversion.
type exchangeRateHandler struct {
	rateService       portssvc.RateTimelineSvcFacade
	conversionService portssvc.ConversionSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.RateTimelineSvcFacade, cs portssvc.ConversionSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService:       rs,
		conversionService: cs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateTimelineSvcFacade, conversionService portssvc.ConversionSvc) {
	h := newExchangeRateHandler(rateService, conversionService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.recordRate)
		rates.GET("/:code", h.listRates)
		rates.GET("/:code/current", h.getCurrentRate)
		rates.GET("/:code/at", h.getRateAt)
	}
	rg.GET("/convert", h.convert)
}

func (h *exchangeRateHandler) recordRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var req dto.RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetUserIDFromContext(c)
	logger.Info("Received request to record rate",
		slog.String("currency_code", req.CurrencyCode),
		slog.String("rate", req.Rate.String()))

	rate, err := h.rateService.RecordRate(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, services.ErrRateNotPositive) {
			logger.Warn("Rejected non-positive rate", slog.String("rate", req.Rate.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Rate recorded against unknown currency", slog.String("currency_code", req.CurrencyCode))
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else {
			logger.Error("Failed to record rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record rate"})
		}
		return
	}

	logger.Info("Rate recorded successfully", slog.String("rate_id", rate.RateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	currencyCode := c.Param("code")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	rates, err := h.rateService.ListRates(c.Request.Context(), tenantID, currencyCode, limit)
	if err != nil {
		logger.Error("Failed to list rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponses(rates))
}

func (h *exchangeRateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	currencyCode := c.Param("code")

	lookup, err := h.rateService.CurrentRate(c.Request.Context(), tenantID, currencyCode)
	if err != nil {
		logger.Error("Failed to resolve current rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateLookupResponse(currencyCode, lookup))
}

func (h *exchangeRateHandler) getRateAt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	currencyCode := c.Param("code")

	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at must be an RFC 3339 timestamp"})
		return
	}

	lookup, err := h.rateService.RateAt(c.Request.Context(), tenantID, currencyCode, at)
	if err != nil {
		logger.Error("Failed to resolve rate at instant", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateLookupResponse(currencyCode, lookup))
}

func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	at := time.Now()
	if params.At != nil {
		at = *params.At
	}

	var (
		conv *domain.Conversion
		err  error
	)
	if params.To == "" {
		conv, err = h.conversionService.ConvertToBase(c.Request.Context(), tenantID, params.Amount, params.From, at)
	} else {
		conv, err = h.conversionService.Convert(c.Request.Context(), tenantID, params.Amount, params.From, params.To, at)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Conversion against unknown currency", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrNoBaseCurrency) {
			logger.Warn("Conversion without a base currency configured")
			c.JSON(http.StatusConflict, gin.H{"error": "No base currency configured"})
		} else {
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(conv))
}
