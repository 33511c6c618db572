package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/dto"
)

// DrawerReaderSvc defines read operations for cash drawer data
type DrawerReaderSvc interface {
	// GetDrawerByID retrieves a drawer by its identifier.
	GetDrawerByID(ctx context.Context, tenantID, drawerID string) (*domain.CashDrawer, error)

	// ListDrawers retrieves all drawers registered for the tenant.
	ListDrawers(ctx context.Context, tenantID string) ([]domain.CashDrawer, error)

	// Balance retrieves one per-currency bucket of a drawer. A bucket that
	// was never touched reads as zero.
	Balance(ctx context.Context, tenantID, drawerID, currencyCode string) (*domain.CashDrawerBalance, error)

	// ListBalances retrieves all non-empty buckets of a drawer.
	ListBalances(ctx context.Context, tenantID, drawerID string) ([]domain.CashDrawerBalance, error)

	// TotalInBase values all of a drawer's buckets in the tenant's base
	// currency at current rates.
	TotalInBase(ctx context.Context, tenantID, drawerID string) (decimal.Decimal, bool, error)

	// Reconcile compares each stored bucket against the sum of ledger
	// entries touching the drawer.
	Reconcile(ctx context.Context, tenantID, drawerID string) ([]domain.DrawerReconciliation, error)
}

// DrawerWriterSvc defines write operations for cash drawer data
type DrawerWriterSvc interface {
	// CreateDrawer registers a new drawer at a location.
	CreateDrawer(ctx context.Context, tenantID string, req dto.CreateDrawerRequest, creatorUserID string) (*domain.CashDrawer, error)

	// AdjustBalance applies a manual correction to one bucket, recorded as
	// an adjustment entry in the ledger.
	AdjustBalance(ctx context.Context, tenantID, drawerID, currencyCode string, delta decimal.Decimal, description string, creatorUserID string) error
}

// DrawerSvcFacade combines all drawer-related service interfaces
type DrawerSvcFacade interface {
	DrawerReaderSvc
	DrawerWriterSvc
}
