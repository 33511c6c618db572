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

// tenantHandler handles HTTP requests related to tenants.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

// newTenantHandler creates a new tenantHandler.
func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{
		tenantService: ts,
	}
}

// registerTenantRoutes registers routes related to tenant administration.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("", h.listTenants)
		tenants.GET("/:tenantID", h.getTenantByID)
		tenants.DELETE("/:tenantID", h.deactivateTenant)
	}
}

func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetUserIDFromContext(c)
	logger.Info("Received request to create tenant", slog.String("tenant_name", req.Name))

	createdTenant, err := h.tenantService.CreateTenant(c.Request.Context(), req.Name, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating tenant", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tenant in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		}
		return
	}

	logger.Info("Tenant created successfully", slog.String("tenant_id", createdTenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(createdTenant))
}

func (h *tenantHandler) getTenantByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Tenant not found", slog.String("tenant_id", tenantID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		} else {
			logger.Error("Failed to get tenant from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tenant"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

func (h *tenantHandler) listTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list tenants from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tenants"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponses(tenants))
}

func (h *tenantHandler) deactivateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	updaterUserID := middleware.GetUserIDFromContext(c)

	logger.Info("Received request to deactivate tenant", slog.String("tenant_id", tenantID))

	if err := h.tenantService.DeactivateTenant(c.Request.Context(), tenantID, updaterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Tenant not found for deactivation", slog.String("tenant_id", tenantID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		} else {
			logger.Error("Failed to deactivate tenant in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate tenant"})
		}
		return
	}

	logger.Info("Tenant deactivated successfully", slog.String("tenant_id", tenantID))
	c.Status(http.StatusNoContent)
}
