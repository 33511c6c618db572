package handlers

import (
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/easyshop/ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Tenant administration is not scoped to a tenant
	registerTenantRoutes(r.Group("/api/v1"), services.Tenant)

	// Setup tenant-scoped API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Every route in the v1 group runs in the scope of one tenant
	v1 := r.Group("/api/v1", middleware.TenantMiddleware())

	// Delegate route registration to specific handlers, passing required services
	registerCurrencyRoutes(v1, service.Currency)
	registerExchangeRateRoutes(v1, service.Rates, service.Conversion)
	registerPriceRoutes(v1, service.Price)
	registerDrawerRoutes(v1, service.Drawer)
	registerLedgerRoutes(v1, service.Recorder, service.Party)
	registerReportingRoutes(v1, service.Reporting)
}
