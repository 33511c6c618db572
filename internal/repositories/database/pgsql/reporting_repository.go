package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/models"
	"github.com/easyshop/ledger/internal/utils/mapping"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for read-only aggregation queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// ListSaleLines retrieves the sale lines of non-reversed sales in [from, to).
// Reversed sales and compensating entries are excluded so a sale plus its
// reversal contributes nothing.
func (r *ReportingRepository) ListSaleLines(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SaleLine, error) {
	query := `
		SELECT l.line_id, l.tenant_id, l.transaction_id, l.variant_id, l.quantity, l.line_total, l.currency_code, l.occurred_at
		FROM sale_lines l
		JOIN transactions t ON t.transaction_id = l.transaction_id
		WHERE l.tenant_id = $1
		  AND l.occurred_at >= $2 AND l.occurred_at < $3
		  AND t.reversed_by IS NULL AND t.reverses IS NULL
		ORDER BY l.occurred_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines: %w", err)
	}
	defer rows.Close()

	modelLines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SaleLine, error) {
		var m models.SaleLine
		err := row.Scan(&m.LineID, &m.TenantID, &m.TransactionID, &m.VariantID, &m.Quantity, &m.LineTotal, &m.CurrencyCode, &m.OccurredAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sale lines: %w", err)
	}

	lines := make([]domain.SaleLine, len(modelLines))
	for i, m := range modelLines {
		lines[i] = mapping.ToDomainSaleLine(m)
	}
	return lines, nil
}

// ListExpenseEvents retrieves non-reversed expense entries in [from, to).
func (r *ReportingRepository) ListExpenseEvents(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExpenseEvent, error) {
	query := `
		SELECT amount, currency_code, occurred_at
		FROM transactions
		WHERE tenant_id = $1
		  AND transaction_type = $2
		  AND occurred_at >= $3 AND occurred_at < $4
		  AND reversed_by IS NULL AND reverses IS NULL
		ORDER BY occurred_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, string(domain.Expense), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense events: %w", err)
	}
	defer rows.Close()

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExpenseEvent, error) {
		var e domain.ExpenseEvent
		err := row.Scan(&e.Amount, &e.CurrencyCode, &e.OccurredAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense events: %w", err)
	}
	return events, nil
}

// ListRevenueEvents retrieves non-reversed sale entries in [from, to) that
// carry no sale lines. Sales with lines are picked up by ListSaleLines, so
// filtering them out here keeps the two sources disjoint.
func (r *ReportingRepository) ListRevenueEvents(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenueEvent, error) {
	query := `
		SELECT t.amount, t.currency_code, t.occurred_at
		FROM transactions t
		WHERE t.tenant_id = $1
		  AND t.reference_type = $2
		  AND t.occurred_at >= $3 AND t.occurred_at < $4
		  AND t.reversed_by IS NULL AND t.reverses IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM sale_lines l WHERE l.transaction_id = t.transaction_id
		  )
		ORDER BY t.occurred_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, string(domain.RefSale), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue events: %w", err)
	}
	defer rows.Close()

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RevenueEvent, error) {
		var e domain.RevenueEvent
		err := row.Scan(&e.Amount, &e.CurrencyCode, &e.OccurredAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan revenue events: %w", err)
	}
	return events, nil
}

// ReconcileDrawer recomputes per-currency drawer balances from the ledger.
// Each entry contributes its settled portion (amount minus any loan left on
// the party account) with the sign of its type; reversal entries look up the
// loan of the entry they compensate. The result is compared against the
// stored buckets.
func (r *ReportingRepository) ReconcileDrawer(ctx context.Context, tenantID, drawerID string) ([]domain.DrawerReconciliation, error) {
	query := `
		WITH from_ledger AS (
			SELECT t.currency_code,
			       SUM(
			           CASE WHEN t.transaction_type = 'EXPENSE' THEN -1 ELSE 1 END
			           * (t.amount - COALESCE(l.amount, 0))
			       ) AS amount
			FROM transactions t
			LEFT JOIN party_statements l
			       ON l.transaction_id = COALESCE(t.reverses, t.transaction_id)
			      AND l.statement_type = 'LOAN'
			WHERE t.tenant_id = $1 AND t.cash_drawer_id = $2
			GROUP BY t.currency_code
		), stored AS (
			SELECT currency_code, amount
			FROM cash_drawer_money
			WHERE tenant_id = $1 AND cash_drawer_id = $2
		)
		SELECT COALESCE(s.currency_code, f.currency_code) AS currency_code,
		       COALESCE(s.amount, 0) AS stored,
		       COALESCE(f.amount, 0) AS from_ledger
		FROM stored s
		FULL OUTER JOIN from_ledger f ON f.currency_code = s.currency_code
		ORDER BY 1;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile drawer %s: %w", drawerID, err)
	}
	defer rows.Close()

	out := make([]domain.DrawerReconciliation, 0)
	for rows.Next() {
		rec := domain.DrawerReconciliation{DrawerID: drawerID}
		var stored, fromLedger decimal.Decimal
		if err := rows.Scan(&rec.CurrencyCode, &stored, &fromLedger); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		rec.Stored = stored
		rec.FromLedger = fromLedger
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation rows: %w", err)
	}
	return out, nil
}
