package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDrawer is a physical or logical cash register at a location.
// Name is unique within (tenant, location).
type CashDrawer struct {
	DrawerID    string `json:"drawerID"`
	TenantID    string `json:"tenantID"`
	LocationID  string `json:"locationID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// CashDrawerBalance is the running balance of one drawer in one currency.
// Created lazily on first movement; may go negative (real cash shortfalls).
type CashDrawerBalance struct {
	DrawerID      string          `json:"drawerID"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	LastCountedAt *time.Time      `json:"lastCountedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DrawerReconciliation is a read-only cross-check of a stored drawer balance
// against the sum of the ledger entries that touched it.
type DrawerReconciliation struct {
	DrawerID     string          `json:"drawerID"`
	CurrencyCode string          `json:"currencyCode"`
	Stored       decimal.Decimal `json:"stored"`
	FromLedger   decimal.Decimal `json:"fromLedger"`
}

// Balanced reports whether the stored balance matches the ledger-derived sum.
func (r DrawerReconciliation) Balanced() bool {
	return r.Stored.Equal(r.FromLedger)
}
