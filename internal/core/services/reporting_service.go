package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/middleware"
)

// ErrInvalidPeriod is returned when a report window ends before it starts.
var ErrInvalidPeriod = errors.New("report period end must be after start")

// reportingService aggregates the append-only history into period figures.
// Every event is valued in base currency with the rate in force on the
// event's own date; the stored history is never modified.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	priceSvc      portssvc.PriceReaderSvc
	conversionSvc portssvc.ConversionSvc
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, priceSvc portssvc.PriceReaderSvc, conversionSvc portssvc.ConversionSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		priceSvc:      priceSvc,
		conversionSvc: conversionSvc,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// dayFigures accumulates one day's numbers while scanning events.
type dayFigures struct {
	sales   decimal.Decimal
	cost    decimal.Decimal
	expense decimal.Decimal
}

// aggregate walks the period's sale lines and expense events once, valuing
// each in base currency at its own date, and returns per-day buckets plus the
// count of degraded conversions.
func (s *reportingService) aggregate(ctx context.Context, tenantID string, from, to time.Time) (map[time.Time]*dayFigures, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines, err := s.reportingRepo.ListSaleLines(ctx, tenantID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sale lines: %w", err)
	}
	expenses, err := s.reportingRepo.ListExpenseEvents(ctx, tenantID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expense events: %w", err)
	}
	revenues, err := s.reportingRepo.ListRevenueEvents(ctx, tenantID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list revenue events: %w", err)
	}

	days := make(map[time.Time]*dayFigures)
	bucket := func(at time.Time) *dayFigures {
		day := at.UTC().Truncate(24 * time.Hour)
		if days[day] == nil {
			days[day] = &dayFigures{
				sales:   decimal.Zero,
				cost:    decimal.Zero,
				expense: decimal.Zero,
			}
		}
		return days[day]
	}

	degraded := 0
	for _, line := range lines {
		conv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, line.LineTotal, line.CurrencyCode, line.OccurredAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to value sale line %s: %w", line.LineID, err)
		}
		if conv.Degraded() {
			degraded++
		}
		day := bucket(line.OccurredAt)
		day.sales = day.sales.Add(conv.Amount)

		// Cost of goods uses the price version in force on the sale date.
		price, err := s.priceSvc.PriceAsOf(ctx, tenantID, line.VariantID, line.OccurredAt)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("No price in force for sold variant, cost omitted",
					slog.String("tenant_id", tenantID),
					slog.String("variant_id", line.VariantID),
					slog.Time("occurred_at", line.OccurredAt),
				)
				continue
			}
			return nil, 0, fmt.Errorf("failed to price sale line %s: %w", line.LineID, err)
		}

		lineCost := price.CostPrice.Mul(line.Quantity)
		costConv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, lineCost, price.CostCurrency, line.OccurredAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to value cost of sale line %s: %w", line.LineID, err)
		}
		if costConv.Degraded() {
			degraded++
		}
		day.cost = day.cost.Add(costConv.Amount)
	}

	// Sales recorded without lines still count as revenue. They carry no
	// variant, so no cost of goods accrues for them.
	for _, e := range revenues {
		conv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, e.Amount, e.CurrencyCode, e.OccurredAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to value sale entry: %w", err)
		}
		if conv.Degraded() {
			degraded++
		}
		day := bucket(e.OccurredAt)
		day.sales = day.sales.Add(conv.Amount)
	}

	for _, e := range expenses {
		conv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, e.Amount, e.CurrencyCode, e.OccurredAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to value expense: %w", err)
		}
		if conv.Degraded() {
			degraded++
		}
		day := bucket(e.OccurredAt)
		day.expense = day.expense.Add(conv.Amount)
	}

	return days, degraded, nil
}

func (s *reportingService) PeriodReport(ctx context.Context, tenantID string, from, to time.Time) (*domain.PeriodReport, error) {
	if !to.After(from) {
		return nil, ErrInvalidPeriod
	}

	days, degraded, err := s.aggregate(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	report := domain.PeriodReport{
		From:      from,
		To:        to,
		Revenue:   decimal.Zero,
		Cost:      decimal.Zero,
		Expense:   decimal.Zero,
		Profit:    decimal.Zero,
		NetProfit: decimal.Zero,
		Degraded:  degraded,
	}
	for _, d := range days {
		report.Revenue = report.Revenue.Add(d.sales)
		report.Cost = report.Cost.Add(d.cost)
		report.Expense = report.Expense.Add(d.expense)
	}
	report.Profit = report.Revenue.Sub(report.Cost)
	report.NetProfit = report.Profit.Sub(report.Expense)
	return &report, nil
}

func (s *reportingService) DailyBreakdown(ctx context.Context, tenantID string, from, to time.Time) ([]domain.DailyFigures, error) {
	if !to.After(from) {
		return nil, ErrInvalidPeriod
	}

	days, _, err := s.aggregate(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DailyFigures, 0, len(days))
	for day, d := range days {
		profit := d.sales.Sub(d.cost)
		out = append(out, domain.DailyFigures{
			Date:      day,
			Sales:     d.sales,
			Expense:   d.expense,
			Cost:      d.cost,
			Profit:    profit,
			NetProfit: profit.Sub(d.expense),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
