package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency mirrors the currencies table.
type Currency struct {
	TenantID      string `db:"tenant_id"`
	CurrencyCode  string `db:"code"`
	Name          string `db:"name"`
	Symbol        string `db:"symbol"`
	DecimalPlaces int32  `db:"decimal_places"`
	IsBase        bool   `db:"is_base"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}

// ExchangeRate mirrors the currency_rates table.
type ExchangeRate struct {
	RateID       string          `db:"rate_id"`
	TenantID     string          `db:"tenant_id"`
	CurrencyCode string          `db:"currency_code"`
	Rate         decimal.Decimal `db:"rate"`
	EffectiveAt  time.Time       `db:"effective_at"`
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}
