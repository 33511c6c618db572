package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/easyshop/ledger/internal/apperrors"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// drawerHandler handles HTTP requests related to cash drawers.
type drawerHandler struct {
	drawerService portssvc.DrawerSvcFacade
}

// newDrawerHandler creates a new drawerHandler.
func newDrawerHandler(ds portssvc.DrawerSvcFacade) *drawerHandler {
	return &drawerHandler{
		drawerService: ds,
	}
}

// registerDrawerRoutes registers routes related to cash drawers.
func registerDrawerRoutes(rg *gin.RouterGroup, drawerService portssvc.DrawerSvcFacade) {
	h := newDrawerHandler(drawerService)

	drawers := rg.Group("/drawers")
	{
		drawers.POST("", h.createDrawer)
		drawers.GET("", h.listDrawers)
		drawers.GET("/:drawerID", h.getDrawerByID)
		drawers.GET("/:drawerID/balances", h.listBalances)
		drawers.GET("/:drawerID/balances/:code", h.getBalance)
		drawers.GET("/:drawerID/total", h.getTotalInBase)
		drawers.GET("/:drawerID/reconciliation", h.reconcile)
		drawers.POST("/:drawerID/adjustments", h.adjustBalance)
	}
}

func (h *drawerHandler) createDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var req dto.CreateDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDrawer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetUserIDFromContext(c)
	logger.Info("Received request to create drawer",
		slog.String("location_id", req.LocationID),
		slog.String("drawer_name", req.Name))

	drawer, err := h.drawerService.CreateDrawer(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Drawer already exists at location", slog.String("drawer_name", req.Name))
			c.JSON(http.StatusConflict, gin.H{"error": "A drawer with that name already exists at the location"})
		} else {
			logger.Error("Failed to create drawer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create drawer"})
		}
		return
	}

	logger.Info("Drawer created successfully", slog.String("drawer_id", drawer.DrawerID))
	c.JSON(http.StatusCreated, dto.ToCashDrawerResponse(drawer))
}

func (h *drawerHandler) listDrawers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	drawers, err := h.drawerService.ListDrawers(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list drawers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drawers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashDrawerResponses(drawers))
}

func (h *drawerHandler) getDrawerByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	drawerID := c.Param("drawerID")

	drawer, err := h.drawerService.GetDrawerByID(c.Request.Context(), tenantID, drawerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Drawer not found", slog.String("drawer_id", drawerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		} else {
			logger.Error("Failed to get drawer from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve drawer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashDrawerResponse(drawer))
}

func (h *drawerHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	drawerID := c.Param("drawerID")

	balances, err := h.drawerService.ListBalances(c.Request.Context(), tenantID, drawerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Drawer not found for balance listing", slog.String("drawer_id", drawerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		} else {
			logger.Error("Failed to list drawer balances", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list balances"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDrawerBalanceResponses(balances))
}

func (h *drawerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	drawerID := c.Param("drawerID")
	currencyCode := c.Param("code")

	balance, err := h.drawerService.Balance(c.Request.Context(), tenantID, drawerID, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Drawer not found for balance lookup", slog.String("drawer_id", drawerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		} else {
			logger.Error("Failed to get drawer balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDrawerBalanceResponse(balance))
}

func (h *drawerHandler) getTotalInBase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	drawerID := c.Param("drawerID")

	total, degraded, err := h.drawerService.TotalInBase(c.Request.Context(), tenantID, drawerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Drawer not found for total", slog.String("drawer_id", drawerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		} else if errors.Is(err, apperrors.ErrNoBaseCurrency) {
			logger.Warn("Drawer total requested without a base currency configured")
			c.JSON(http.StatusConflict, gin.H{"error": "No base currency configured"})
		} else {
			logger.Error("Failed to total drawer in base currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to total drawer"})
		}
		return
	}

	resp := dto.DrawerTotalResponse{
		DrawerID: drawerID,
		Total:    total,
		Degraded: degraded,
	}
	c.JSON(http.StatusOK, resp)
}

func (h *drawerHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	drawerID := c.Param("drawerID")

	rows, err := h.drawerService.Reconcile(c.Request.Context(), tenantID, drawerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Drawer not found for reconciliation", slog.String("drawer_id", drawerID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Drawer not found"})
		} else {
			logger.Error("Failed to reconcile drawer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile drawer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDrawerReconciliationResponses(rows))
}

func (h *drawerHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)
	drawerID := c.Param("drawerID")

	var req dto.AdjustDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustDrawer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetUserIDFromContext(c)
	logger.Info("Received request to adjust drawer",
		slog.String("drawer_id", drawerID),
		slog.String("currency_code", req.CurrencyCode),
		slog.String("delta", req.Delta.String()))

	err := h.drawerService.AdjustBalance(c.Request.Context(), tenantID, drawerID, req.CurrencyCode, req.Delta, req.Description, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adjusting drawer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Drawer or currency not found for adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Drawer or currency not found"})
		} else if errors.Is(err, apperrors.ErrTransient) {
			logger.Warn("Adjustment kept conflicting, asking caller to retry", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Adjustment conflicted with concurrent activity, retry"})
		} else {
			logger.Error("Failed to adjust drawer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust drawer"})
		}
		return
	}

	logger.Info("Drawer adjusted successfully", slog.String("drawer_id", drawerID))
	c.Status(http.StatusNoContent)
}
