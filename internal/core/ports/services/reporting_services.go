package services

import (
	"context"
	"time"

	"github.com/easyshop/ledger/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// PeriodReport aggregates revenue, cost and expense over a period,
	// restated in base currency at each event's own date.
	PeriodReport(ctx context.Context, tenantID string, from, to time.Time) (*domain.PeriodReport, error)

	// DailyBreakdown produces per-day figures for a period.
	DailyBreakdown(ctx context.Context, tenantID string, from, to time.Time) ([]domain.DailyFigures, error)
}
