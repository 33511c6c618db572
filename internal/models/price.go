package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPrice mirrors the product_prices table.
type ProductPrice struct {
	PriceID         string          `db:"price_id"`
	TenantID        string          `db:"tenant_id"`
	VariantID       string          `db:"variant_id"`
	CostPrice       decimal.Decimal `db:"cost_price"`
	CostCurrency    string          `db:"cost_currency"`
	SellingPrice    decimal.Decimal `db:"selling_price"`
	SellingCurrency string          `db:"selling_currency"`
	EffectiveAt     time.Time       `db:"effective_at"`
	EndAt           *time.Time      `db:"end_at"`
	IsCurrent       bool            `db:"is_current"`
	AuditFields
}
