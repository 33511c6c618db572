package repositories

import (
	"context"
	"time"

	"github.com/easyshop/ledger/internal/core/domain"
)

// ReportingRepository defines the read-only queries the period aggregator
// runs over the append-only history. None of these take locks.
type ReportingRepository interface {
	// ListSaleLines retrieves the sale lines of non-reversed sales whose
	// occurred_at falls in [from, to).
	ListSaleLines(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SaleLine, error)

	// ListExpenseEvents retrieves non-reversed expense entries whose
	// occurred_at falls in [from, to).
	ListExpenseEvents(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExpenseEvent, error)

	// ListRevenueEvents retrieves non-reversed sale entries that carry no sale
	// lines, whose occurred_at falls in [from, to).
	ListRevenueEvents(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenueEvent, error)

	// ReconcileDrawer recomputes a drawer's per-currency balances from the
	// ledger entries that touched it, for cross-checking against the stored
	// balances.
	ReconcileDrawer(ctx context.Context, tenantID, drawerID string) ([]domain.DrawerReconciliation, error)
}
