package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// SetPriceRequest defines the payload for setting a variant's current price.
// Omitted cost/selling fields inherit from the price row being replaced.
type SetPriceRequest struct {
	VariantID       string           `json:"variantID" binding:"required"`
	CostPrice       *decimal.Decimal `json:"costPrice,omitempty"`
	CostCurrency    *string          `json:"costCurrency,omitempty" binding:"omitempty,len=3,uppercase"`
	SellingPrice    *decimal.Decimal `json:"sellingPrice,omitempty"`
	SellingCurrency *string          `json:"sellingCurrency,omitempty" binding:"omitempty,len=3,uppercase"`
	EffectiveAt     *time.Time       `json:"effectiveAt,omitempty"` // defaults to now
}

// ProductPriceResponse is the API representation of a price version.
type ProductPriceResponse struct {
	PriceID         string          `json:"priceID"`
	VariantID       string          `json:"variantID"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	CostCurrency    string          `json:"costCurrency"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	SellingCurrency string          `json:"sellingCurrency"`
	EffectiveAt     time.Time       `json:"effectiveAt"`
	EndAt           *time.Time      `json:"endAt,omitempty"`
	IsCurrent       bool            `json:"isCurrent"`
}

// ToProductPriceResponse converts a domain ProductPrice to its response form.
func ToProductPriceResponse(p *domain.ProductPrice) ProductPriceResponse {
	return ProductPriceResponse{
		PriceID:         p.PriceID,
		VariantID:       p.VariantID,
		CostPrice:       p.CostPrice,
		CostCurrency:    p.CostCurrency,
		SellingPrice:    p.SellingPrice,
		SellingCurrency: p.SellingCurrency,
		EffectiveAt:     p.EffectiveAt,
		EndAt:           p.EndAt,
		IsCurrent:       p.IsCurrent,
	}
}

// ToProductPriceResponses converts a slice of domain ProductPrices.
func ToProductPriceResponses(ps []domain.ProductPrice) []ProductPriceResponse {
	out := make([]ProductPriceResponse, len(ps))
	for i := range ps {
		out[i] = ToProductPriceResponse(&ps[i])
	}
	return out
}
