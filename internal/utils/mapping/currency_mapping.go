package mapping

import (
	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		TenantID:      d.TenantID,
		CurrencyCode:  d.CurrencyCode,
		Name:          d.Name,
		Symbol:        d.Symbol,
		DecimalPlaces: d.DecimalPlaces,
		IsBase:        d.IsBase,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		TenantID:      m.TenantID,
		CurrencyCode:  m.CurrencyCode,
		Name:          m.Name,
		Symbol:        m.Symbol,
		DecimalPlaces: m.DecimalPlaces,
		IsBase:        m.IsBase,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		RateID:       d.RateID,
		TenantID:     d.TenantID,
		CurrencyCode: d.CurrencyCode,
		Rate:         d.Rate,
		EffectiveAt:  d.EffectiveAt,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		RateID:       m.RateID,
		TenantID:     m.TenantID,
		CurrencyCode: m.CurrencyCode,
		Rate:         m.Rate,
		EffectiveAt:  m.EffectiveAt,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}
