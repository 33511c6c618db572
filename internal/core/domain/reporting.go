package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodReport aggregates monetary activity over a period, fully restated in
// the tenant's base currency using the rate effective on each event's own date.
type PeriodReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Expense   decimal.Decimal `json:"expense"`
	Profit    decimal.Decimal `json:"profit"`    // revenue - cost
	NetProfit decimal.Decimal `json:"netProfit"` // profit - expense
	// Degraded counts conversions that had to fall back to a non-effective
	// rate; non-zero means missing rates should be backfilled.
	Degraded int `json:"degraded"`
}

// DailyFigures is one row of a month's daily breakdown, in base currency.
type DailyFigures struct {
	Date      time.Time       `json:"date"`
	Sales     decimal.Decimal `json:"sales"`
	Expense   decimal.Decimal `json:"expense"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// ExpenseEvent is a raw expense row fed into the aggregator.
type ExpenseEvent struct {
	Amount       decimal.Decimal
	CurrencyCode string
	OccurredAt   time.Time
}

// RevenueEvent is a sale entry recorded without sale lines. Sales that carry
// lines are aggregated from the lines instead, so the two never double count.
type RevenueEvent struct {
	Amount       decimal.Decimal
	CurrencyCode string
	OccurredAt   time.Time
}
