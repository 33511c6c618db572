package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/models"
	"github.com/easyshop/ledger/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `tenant_id, code, name, symbol, decimal_places, is_base, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.TenantID,
		&m.CurrencyCode,
		&m.Name,
		&m.Symbol,
		&m.DecimalPlaces,
		&m.IsBase,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCurrency inserts a new currency for a tenant.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.CurrencyCode,
		m.Name,
		m.Symbol,
		m.DecimalPlaces,
		m.IsBase,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if classified := classifyPgError(err); errors.Is(classified, apperrors.ErrDuplicate) {
			return fmt.Errorf("currency %s: %w", m.CurrencyCode, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save currency %s: %w", m.CurrencyCode, err)
	}
	return nil
}

// SetBaseCurrency promotes one currency to base and demotes the previous one
// in a single database transaction, so at no point does a tenant have two
// base currencies.
func (r *PgxCurrencyRepository) SetBaseCurrency(ctx context.Context, tenantID, currencyCode, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	demote := `
		UPDATE currencies
		SET is_base = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $1 AND is_base = TRUE AND code <> $4;
	`
	if _, err := tx.Exec(ctx, demote, tenantID, now, updatedBy, currencyCode); err != nil {
		return fmt.Errorf("failed to demote previous base currency: %w", err)
	}

	promote := `
		UPDATE currencies
		SET is_base = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND code = $2;
	`
	tag, err := tx.Exec(ctx, promote, tenantID, currencyCode, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to promote base currency %s: %w", currencyCode, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindCurrencyByCode retrieves a currency by tenant and 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE tenant_id = $1 AND code = $2;
	`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, tenantID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// FindBaseCurrency retrieves the tenant's base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE tenant_id = $1 AND is_base = TRUE;
	`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoBaseCurrency
		}
		return nil, fmt.Errorf("failed to find base currency: %w", err)
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// ListCurrencies retrieves all currencies of a tenant.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE tenant_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	currencies := make([]domain.Currency, len(modelCurrencies))
	for i, m := range modelCurrencies {
		currencies[i] = mapping.ToDomainCurrency(m)
	}
	return currencies, nil
}
