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

type PgxPriceRepository struct {
	BaseRepository
}

// newPgxPriceRepository creates a new repository for the price version ledger.
func newPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PriceRepositoryFacade = (*PgxPriceRepository)(nil)

const priceColumns = `price_id, tenant_id, variant_id, cost_price, cost_currency, selling_price, selling_currency, effective_at, end_at, is_current, created_at, created_by, last_updated_at, last_updated_by`

func scanPrice(row pgx.Row) (models.ProductPrice, error) {
	var m models.ProductPrice
	err := row.Scan(
		&m.PriceID,
		&m.TenantID,
		&m.VariantID,
		&m.CostPrice,
		&m.CostCurrency,
		&m.SellingPrice,
		&m.SellingCurrency,
		&m.EffectiveAt,
		&m.EndAt,
		&m.IsCurrent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ReplaceCurrentPrice closes the variant's current price row and inserts the
// new one in a single database transaction. The current row is locked first
// so two concurrent replacements serialize instead of both ending up current.
func (r *PgxPriceRepository) ReplaceCurrentPrice(ctx context.Context, newPrice domain.ProductPrice) error {
	m := mapping.ToModelProductPrice(newPrice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lock := `
		SELECT price_id
		FROM product_prices
		WHERE tenant_id = $1 AND variant_id = $2 AND is_current = TRUE
		FOR UPDATE;
	`
	var currentID string
	err = tx.QueryRow(ctx, lock, m.TenantID, m.VariantID).Scan(&currentID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to lock current price of variant %s: %w", m.VariantID, classifyPgError(err))
	}

	if currentID != "" {
		closeout := `
			UPDATE product_prices
			SET is_current = FALSE,
			    end_at = COALESCE(end_at, $2),
			    last_updated_at = $3,
			    last_updated_by = $4
			WHERE price_id = $1;
		`
		if _, err := tx.Exec(ctx, closeout, currentID, m.EffectiveAt, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
			return fmt.Errorf("failed to close out price %s: %w", currentID, err)
		}
	}

	insert := `
		INSERT INTO product_prices (` + priceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insert,
		m.PriceID,
		m.TenantID,
		m.VariantID,
		m.CostPrice,
		m.CostCurrency,
		m.SellingPrice,
		m.SellingCurrency,
		m.EffectiveAt,
		m.EndAt,
		m.IsCurrent,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert price for variant %s: %w", m.VariantID, classifyPgError(err))
	}

	return r.Commit(ctx, tx)
}

// FindCurrentPrice retrieves the variant's current price row.
func (r *PgxPriceRepository) FindCurrentPrice(ctx context.Context, tenantID, variantID string) (*domain.ProductPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM product_prices
		WHERE tenant_id = $1 AND variant_id = $2 AND is_current = TRUE;
	`
	m, err := scanPrice(r.Pool.QueryRow(ctx, query, tenantID, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current price of variant %s: %w", variantID, err)
	}
	price := mapping.ToDomainProductPrice(m)
	return &price, nil
}

// FindPriceAsOf retrieves the price version in force at the given instant.
func (r *PgxPriceRepository) FindPriceAsOf(ctx context.Context, tenantID, variantID string, at time.Time) (*domain.ProductPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM product_prices
		WHERE tenant_id = $1 AND variant_id = $2
		  AND effective_at <= $3
		  AND (end_at IS NULL OR end_at >= $3)
		ORDER BY effective_at DESC, created_at DESC
		LIMIT 1;
	`
	m, err := scanPrice(r.Pool.QueryRow(ctx, query, tenantID, variantID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price of variant %s as of %s: %w", variantID, at.Format(time.RFC3339), err)
	}
	price := mapping.ToDomainProductPrice(m)
	return &price, nil
}

// ListPriceHistory retrieves all price versions of a variant, newest first.
func (r *PgxPriceRepository) ListPriceHistory(ctx context.Context, tenantID, variantID string) ([]domain.ProductPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM product_prices
		WHERE tenant_id = $1 AND variant_id = $2
		ORDER BY effective_at DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history of variant %s: %w", variantID, err)
	}
	defer rows.Close()

	modelPrices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ProductPrice, error) {
		return scanPrice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan price history: %w", err)
	}

	prices := make([]domain.ProductPrice, len(modelPrices))
	for i, m := range modelPrices {
		prices[i] = mapping.ToDomainProductPrice(m)
	}
	return prices, nil
}
