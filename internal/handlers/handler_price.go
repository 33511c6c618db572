package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/easyshop/ledger/internal/apperrors"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// priceHandler handles HTTP requests related to product prices.
type priceHandler struct {
	priceService portssvc.PriceSvcFacade
}

// newPriceHandler creates a new priceHandler.
func newPriceHandler(ps portssvc.PriceSvcFacade) *priceHandler {
	return &priceHandler{
		priceService: ps,
	}
}

// registerPriceRoutes registers routes related to product prices.
func registerPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceSvcFacade) {
	h := newPriceHandler(priceService)

	prices := rg.Group("/prices")
	{
		prices.POST("", h.setPrice)
		prices.GET("/:variantID", h.getCurrentPrice)
		prices.GET("/:variantID/asof", h.getPriceAsOf)
		prices.GET("/:variantID/history", h.listPriceHistory)
	}
}

func (h *priceHandler) setPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var req dto.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetPrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetUserIDFromContext(c)
	logger.Info("Received request to set price", slog.String("variant_id", req.VariantID))

	price, err := h.priceService.SetCurrentPrice(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, services.ErrPriceIncomplete) {
			logger.Warn("First price for variant missing fields", slog.String("variant_id", req.VariantID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Price refers to unknown currency", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting price", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set price in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set price"})
		}
		return
	}

	logger.Info("Price set successfully",
		slog.String("variant_id", price.VariantID),
		slog.String("price_id", price.PriceID))
	c.JSON(http.StatusCreated, dto.ToProductPriceResponse(price))
}

func (h *priceHandler) getCurrentPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	variantID := c.Param("variantID")

	price, err := h.priceService.GetCurrentPrice(c.Request.Context(), tenantID, variantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No current price for variant", slog.String("variant_id", variantID))
			c.JSON(http.StatusNotFound, gin.H{"error": "No current price for variant"})
		} else {
			logger.Error("Failed to get current price from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve price"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductPriceResponse(price))
}

func (h *priceHandler) getPriceAsOf(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	variantID := c.Param("variantID")

	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at must be an RFC 3339 timestamp"})
		return
	}

	price, err := h.priceService.PriceAsOf(c.Request.Context(), tenantID, variantID, at)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No price for variant at instant",
				slog.String("variant_id", variantID),
				slog.Time("at", at))
			c.JSON(http.StatusNotFound, gin.H{"error": "No price for variant at that instant"})
		} else {
			logger.Error("Failed to get price as of instant", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve price"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductPriceResponse(price))
}

func (h *priceHandler) listPriceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	variantID := c.Param("variantID")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	prices, err := h.priceService.ListPriceHistory(c.Request.Context(), tenantID, variantID, limit)
	if err != nil {
		logger.Error("Failed to list price history from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list price history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductPriceResponses(prices))
}
