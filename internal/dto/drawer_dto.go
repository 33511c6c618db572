package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// CreateDrawerRequest defines the payload for registering a cash drawer.
type CreateDrawerRequest struct {
	LocationID  string `json:"locationID" binding:"required"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// AdjustDrawerRequest defines the payload for a manual drawer correction.
type AdjustDrawerRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Delta        decimal.Decimal `json:"delta" binding:"required"`
	Description  string          `json:"description" binding:"max=255"`
}

// CashDrawerResponse is the API representation of a cash drawer.
type CashDrawerResponse struct {
	DrawerID    string    `json:"drawerID"`
	LocationID  string    `json:"locationID"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DrawerBalanceResponse is one per-currency bucket of a drawer.
type DrawerBalanceResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	LastCountedAt *time.Time      `json:"lastCountedAt,omitempty"`
}

// DrawerTotalResponse is the base-currency total of a drawer's buckets.
type DrawerTotalResponse struct {
	DrawerID string          `json:"drawerID"`
	Total    decimal.Decimal `json:"total"`
	Degraded bool            `json:"degraded"`
}

// DrawerReconciliationResponse compares a bucket against the ledger.
type DrawerReconciliationResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Stored       decimal.Decimal `json:"stored"`
	FromLedger   decimal.Decimal `json:"fromLedger"`
	Balanced     bool            `json:"balanced"`
}

// ToCashDrawerResponse converts a domain CashDrawer to its response form.
func ToCashDrawerResponse(d *domain.CashDrawer) CashDrawerResponse {
	return CashDrawerResponse{
		DrawerID:    d.DrawerID,
		LocationID:  d.LocationID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

// ToCashDrawerResponses converts a slice of domain CashDrawers.
func ToCashDrawerResponses(ds []domain.CashDrawer) []CashDrawerResponse {
	out := make([]CashDrawerResponse, len(ds))
	for i := range ds {
		out[i] = ToCashDrawerResponse(&ds[i])
	}
	return out
}

// ToDrawerBalanceResponse converts a domain CashDrawerBalance.
func ToDrawerBalanceResponse(b *domain.CashDrawerBalance) DrawerBalanceResponse {
	return DrawerBalanceResponse{
		CurrencyCode:  b.CurrencyCode,
		Amount:        b.Amount,
		LastCountedAt: b.LastCountedAt,
	}
}

// ToDrawerBalanceResponses converts a slice of domain CashDrawerBalances.
func ToDrawerBalanceResponses(bs []domain.CashDrawerBalance) []DrawerBalanceResponse {
	out := make([]DrawerBalanceResponse, len(bs))
	for i := range bs {
		out[i] = ToDrawerBalanceResponse(&bs[i])
	}
	return out
}

// ToDrawerReconciliationResponses converts reconciliation rows.
func ToDrawerReconciliationResponses(rs []domain.DrawerReconciliation) []DrawerReconciliationResponse {
	out := make([]DrawerReconciliationResponse, len(rs))
	for i := range rs {
		out[i] = DrawerReconciliationResponse{
			CurrencyCode: rs[i].CurrencyCode,
			Stored:       rs[i].Stored,
			FromLedger:   rs[i].FromLedger,
			Balanced:     rs[i].Balanced(),
		}
	}
	return out
}
