package mapping

import (
	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/models"
)

// ToModelCashDrawer converts a domain CashDrawer to a model CashDrawer.
func ToModelCashDrawer(d domain.CashDrawer) models.CashDrawer {
	return models.CashDrawer{
		DrawerID:    d.DrawerID,
		TenantID:    d.TenantID,
		LocationID:  d.LocationID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashDrawer converts a model CashDrawer to a domain CashDrawer.
func ToDomainCashDrawer(m models.CashDrawer) domain.CashDrawer {
	return domain.CashDrawer{
		DrawerID:    m.DrawerID,
		TenantID:    m.TenantID,
		LocationID:  m.LocationID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCashDrawerBalance converts a model CashDrawerBalance to its domain form.
func ToDomainCashDrawerBalance(m models.CashDrawerBalance) domain.CashDrawerBalance {
	return domain.CashDrawerBalance{
		DrawerID:      m.DrawerID,
		CurrencyCode:  m.CurrencyCode,
		Amount:        m.Amount,
		LastCountedAt: m.LastCountedAt,
		CreatedAt:     m.CreatedAt,
	}
}
