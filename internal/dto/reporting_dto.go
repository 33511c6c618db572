package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// PeriodReportParams carries the reporting window query parameters.
type PeriodReportParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// PeriodReportResponse summarizes a period in base currency.
type PeriodReportResponse struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Expense   decimal.Decimal `json:"expense"`
	Profit    decimal.Decimal `json:"profit"`
	NetProfit decimal.Decimal `json:"netProfit"`
	// Degraded counts events valued with a fallback rate.
	Degraded int `json:"degraded"`
}

// DailyFiguresResponse is one day of the daily breakdown.
type DailyFiguresResponse struct {
	Date      string          `json:"date"`
	Sales     decimal.Decimal `json:"sales"`
	Expense   decimal.Decimal `json:"expense"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// ToPeriodReportResponse converts a domain PeriodReport.
func ToPeriodReportResponse(r *domain.PeriodReport) PeriodReportResponse {
	return PeriodReportResponse{
		From:      r.From,
		To:        r.To,
		Revenue:   r.Revenue,
		Cost:      r.Cost,
		Expense:   r.Expense,
		Profit:    r.Profit,
		NetProfit: r.NetProfit,
		Degraded:  r.Degraded,
	}
}

// ToDailyFiguresResponses converts the daily breakdown rows.
func ToDailyFiguresResponses(ds []domain.DailyFigures) []DailyFiguresResponse {
	out := make([]DailyFiguresResponse, len(ds))
	for i := range ds {
		out[i] = DailyFiguresResponse{
			Date:      ds[i].Date.Format("2006-01-02"),
			Sales:     ds[i].Sales,
			Expense:   ds[i].Expense,
			Cost:      ds[i].Cost,
			Profit:    ds[i].Profit,
			NetProfit: ds[i].NetProfit,
		}
	}
	return out
}
