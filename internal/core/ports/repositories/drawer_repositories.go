package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// DrawerReader defines read operations for cash drawers and their balances.
type DrawerReader interface {
	// FindDrawerByID retrieves a drawer by its unique identifier.
	FindDrawerByID(ctx context.Context, tenantID, drawerID string) (*domain.CashDrawer, error)

	// ListDrawers retrieves all drawers of a tenant.
	ListDrawers(ctx context.Context, tenantID string) ([]domain.CashDrawer, error)

	// FindBalance retrieves the stored (drawer, currency) balance.
	// A never-touched pair reads as zero, not as an error.
	FindBalance(ctx context.Context, tenantID, drawerID, currencyCode string) (decimal.Decimal, error)

	// ListBalances retrieves all per-currency balances of a drawer.
	ListBalances(ctx context.Context, tenantID, drawerID string) ([]domain.CashDrawerBalance, error)
}

// DrawerWriter defines write operations for cash drawers and their balances.
type DrawerWriter interface {
	// SaveDrawer persists a new cash drawer.
	SaveDrawer(ctx context.Context, drawer domain.CashDrawer) error

	// AdjustBalance atomically adds delta to the (drawer, currency) balance,
	// creating the row at zero on first movement. This is the only write path
	// to drawer balances.
	AdjustBalance(ctx context.Context, tenantID, drawerID, currencyCode string, delta decimal.Decimal) error

	// AdjustBalanceInTx is AdjustBalance executed on an existing database
	// transaction, for callers composing larger atomic units.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID, drawerID, currencyCode string, delta decimal.Decimal) error
}

// DrawerRepositoryFacade combines all drawer repository interfaces.
type DrawerRepositoryFacade interface {
	DrawerReader
	DrawerWriter
}
