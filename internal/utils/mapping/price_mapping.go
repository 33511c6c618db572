package mapping

import (
	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/models"
)

// ToModelProductPrice converts a domain ProductPrice to a model ProductPrice.
func ToModelProductPrice(d domain.ProductPrice) models.ProductPrice {
	return models.ProductPrice{
		PriceID:         d.PriceID,
		TenantID:        d.TenantID,
		VariantID:       d.VariantID,
		CostPrice:       d.CostPrice,
		CostCurrency:    d.CostCurrency,
		SellingPrice:    d.SellingPrice,
		SellingCurrency: d.SellingCurrency,
		EffectiveAt:     d.EffectiveAt,
		EndAt:           d.EndAt,
		IsCurrent:       d.IsCurrent,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProductPrice converts a model ProductPrice to a domain ProductPrice.
func ToDomainProductPrice(m models.ProductPrice) domain.ProductPrice {
	return domain.ProductPrice{
		PriceID:         m.PriceID,
		TenantID:        m.TenantID,
		VariantID:       m.VariantID,
		CostPrice:       m.CostPrice,
		CostCurrency:    m.CostCurrency,
		SellingPrice:    m.SellingPrice,
		SellingCurrency: m.SellingCurrency,
		EffectiveAt:     m.EffectiveAt,
		EndAt:           m.EndAt,
		IsCurrent:       m.IsCurrent,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
