package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/models"
	"github.com/easyshop/ledger/internal/utils/mapping"
)

type PgxDrawerRepository struct {
	BaseRepository
}

// newPgxDrawerRepository creates a new repository for cash drawers and their balances.
func newPgxDrawerRepository(pool *pgxpool.Pool) portsrepo.DrawerRepositoryFacade {
	return &PgxDrawerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DrawerRepositoryFacade = (*PgxDrawerRepository)(nil)

const drawerColumns = `drawer_id, tenant_id, location_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanDrawer(row pgx.Row) (models.CashDrawer, error) {
	var m models.CashDrawer
	err := row.Scan(
		&m.DrawerID,
		&m.TenantID,
		&m.LocationID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDrawer inserts a new drawer. Name is unique per (tenant, location).
func (r *PgxDrawerRepository) SaveDrawer(ctx context.Context, drawer domain.CashDrawer) error {
	m := mapping.ToModelCashDrawer(drawer)
	query := `
		INSERT INTO cash_drawers (` + drawerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DrawerID,
		m.TenantID,
		m.LocationID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if classified := classifyPgError(err); errors.Is(classified, apperrors.ErrDuplicate) {
			return fmt.Errorf("drawer %q at location %s: %w", m.Name, m.LocationID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save drawer %s: %w", m.DrawerID, err)
	}
	return nil
}

// FindDrawerByID retrieves a drawer by its identifier.
func (r *PgxDrawerRepository) FindDrawerByID(ctx context.Context, tenantID, drawerID string) (*domain.CashDrawer, error) {
	query := `
		SELECT ` + drawerColumns + `
		FROM cash_drawers
		WHERE tenant_id = $1 AND drawer_id = $2;
	`
	m, err := scanDrawer(r.Pool.QueryRow(ctx, query, tenantID, drawerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find drawer %s: %w", drawerID, err)
	}
	drawer := mapping.ToDomainCashDrawer(m)
	return &drawer, nil
}

// ListDrawers retrieves all drawers of a tenant.
func (r *PgxDrawerRepository) ListDrawers(ctx context.Context, tenantID string) ([]domain.CashDrawer, error) {
	query := `
		SELECT ` + drawerColumns + `
		FROM cash_drawers
		WHERE tenant_id = $1
		ORDER BY location_id, name;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drawers: %w", err)
	}
	defer rows.Close()

	modelDrawers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashDrawer, error) {
		return scanDrawer(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan drawers: %w", err)
	}

	drawers := make([]domain.CashDrawer, len(modelDrawers))
	for i, m := range modelDrawers {
		drawers[i] = mapping.ToDomainCashDrawer(m)
	}
	return drawers, nil
}

// FindBalance retrieves the stored (drawer, currency) balance. A pair that
// never moved reads as zero.
func (r *PgxDrawerRepository) FindBalance(ctx context.Context, tenantID, drawerID, currencyCode string) (decimal.Decimal, error) {
	query := `
		SELECT amount
		FROM cash_drawer_money
		WHERE tenant_id = $1 AND cash_drawer_id = $2 AND currency_code = $3;
	`
	var amount decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, drawerID, currencyCode).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to find balance of drawer %s in %s: %w", drawerID, currencyCode, err)
	}
	return amount, nil
}

// ListBalances retrieves all per-currency balances of a drawer.
func (r *PgxDrawerRepository) ListBalances(ctx context.Context, tenantID, drawerID string) ([]domain.CashDrawerBalance, error) {
	query := `
		SELECT cash_drawer_id, currency_code, amount, last_counted_at, created_at
		FROM cash_drawer_money
		WHERE tenant_id = $1 AND cash_drawer_id = $2
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances of drawer %s: %w", drawerID, err)
	}
	defer rows.Close()

	modelBalances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashDrawerBalance, error) {
		var m models.CashDrawerBalance
		err := row.Scan(&m.DrawerID, &m.CurrencyCode, &m.Amount, &m.LastCountedAt, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan drawer balances: %w", err)
	}

	balances := make([]domain.CashDrawerBalance, len(modelBalances))
	for i, m := range modelBalances {
		balances[i] = mapping.ToDomainCashDrawerBalance(m)
	}
	return balances, nil
}

// adjustBalanceQuery adds the delta in one statement, creating the row at the
// delta on first movement. The single upsert makes concurrent movements
// serialize on the row without read-modify-write races.
const adjustBalanceQuery = `
	INSERT INTO cash_drawer_money (tenant_id, cash_drawer_id, currency_code, amount, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (tenant_id, cash_drawer_id, currency_code)
	DO UPDATE SET amount = cash_drawer_money.amount + EXCLUDED.amount;
`

// AdjustBalance atomically adds delta to the (drawer, currency) balance.
func (r *PgxDrawerRepository) AdjustBalance(ctx context.Context, tenantID, drawerID, currencyCode string, delta decimal.Decimal) error {
	if _, err := r.Pool.Exec(ctx, adjustBalanceQuery, tenantID, drawerID, currencyCode, delta); err != nil {
		return fmt.Errorf("failed to adjust balance of drawer %s in %s: %w", drawerID, currencyCode, classifyPgError(err))
	}
	return nil
}

// AdjustBalanceInTx is AdjustBalance on an existing database transaction.
func (r *PgxDrawerRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID, drawerID, currencyCode string, delta decimal.Decimal) error {
	if _, err := tx.Exec(ctx, adjustBalanceQuery, tenantID, drawerID, currencyCode, delta); err != nil {
		return fmt.Errorf("failed to adjust balance of drawer %s in %s: %w", drawerID, currencyCode, classifyPgError(err))
	}
	return nil
}
