package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/easyshop/ledger/internal/apperrors"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for period reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getPeriodReport)
		reports.GET("/daily", h.getDailyBreakdown)
	}
}

func (h *reportingHandler) getPeriodReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var params dto.PeriodReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for PeriodReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.PeriodReport(c.Request.Context(), tenantID, params.From, params.To)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			logger.Warn("Rejected invalid report period")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNoBaseCurrency) {
			logger.Warn("Report requested without a base currency configured")
			c.JSON(http.StatusConflict, gin.H{"error": "No base currency configured"})
		} else {
			logger.Error("Failed to build period report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodReportResponse(report))
}

func (h *reportingHandler) getDailyBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantFromContext(c)

	var params dto.PeriodReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for DailyBreakdown", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	days, err := h.reportingService.DailyBreakdown(c.Request.Context(), tenantID, params.From, params.To)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			logger.Warn("Rejected invalid report period")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNoBaseCurrency) {
			logger.Warn("Report requested without a base currency configured")
			c.JSON(http.StatusConflict, gin.H{"error": "No base currency configured"})
		} else {
			logger.Error("Failed to build daily breakdown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyFiguresResponses(days))
}
