package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPrice is one version of a product variant's cost/selling price.
// For a given variant at most one row has IsCurrent set; ending the previous
// current row and inserting the new one happen in the same atomic step.
type ProductPrice struct {
	PriceID         string          `json:"priceID"`
	TenantID        string          `json:"tenantID"`
	VariantID       string          `json:"variantID"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	CostCurrency    string          `json:"costCurrency"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	SellingCurrency string          `json:"sellingCurrency"`
	EffectiveAt     time.Time       `json:"effectiveAt"`
	EndAt           *time.Time      `json:"endAt,omitempty"` // nil while current
	IsCurrent       bool            `json:"isCurrent"`
	AuditFields
}

// InForceAt reports whether this price version was in force at the given instant.
func (p ProductPrice) InForceAt(at time.Time) bool {
	if p.EffectiveAt.After(at) {
		return false
	}
	return p.EndAt == nil || !p.EndAt.Before(at)
}
