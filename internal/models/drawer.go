package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDrawer mirrors the cash_drawers table.
type CashDrawer struct {
	DrawerID    string `db:"drawer_id"`
	TenantID    string `db:"tenant_id"`
	LocationID  string `db:"location_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// CashDrawerBalance mirrors the cash_drawer_money table, unique on
// (cash_drawer_id, currency_code).
type CashDrawerBalance struct {
	DrawerID      string          `db:"cash_drawer_id"`
	CurrencyCode  string          `db:"currency_code"`
	Amount        decimal.Decimal `db:"amount"`
	LastCountedAt *time.Time      `db:"last_counted_at"`
	CreatedAt     time.Time       `db:"created_at"`
}
