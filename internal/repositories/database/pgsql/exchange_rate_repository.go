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

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for the rate timeline.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const rateColumns = `rate_id, tenant_id, currency_code, rate, effective_at, created_at, created_by`

func scanRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.RateID,
		&m.TenantID,
		&m.CurrencyCode,
		&m.Rate,
		&m.EffectiveAt,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveRate appends a new immutable rate point. There is no update path.
func (r *PgxExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO currency_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RateID,
		m.TenantID,
		m.CurrencyCode,
		m.Rate,
		m.EffectiveAt,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate for %s: %w", m.CurrencyCode, err)
	}
	return nil
}

// FindRateAt retrieves the rate point in force at the given instant: the
// greatest effective_at <= at, ties broken by insertion time so a same-instant
// correction wins.
func (r *PgxExchangeRateRepository) FindRateAt(ctx context.Context, tenantID, currencyCode string, at time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE tenant_id = $1 AND currency_code = $2 AND effective_at <= $3
		ORDER BY effective_at DESC, created_at DESC
		LIMIT 1;
	`
	m, err := scanRate(r.Pool.QueryRow(ctx, query, tenantID, currencyCode, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate for %s at %s: %w", currencyCode, at.Format(time.RFC3339), err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindLatestRate retrieves the currency's most recent rate point regardless
// of its effective instant.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, tenantID, currencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE tenant_id = $1 AND currency_code = $2
		ORDER BY effective_at DESC, created_at DESC
		LIMIT 1;
	`
	m, err := scanRate(r.Pool.QueryRow(ctx, query, tenantID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate for %s: %w", currencyCode, err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListRates retrieves a currency's full timeline, newest first.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, tenantID, currencyCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE tenant_id = $1 AND currency_code = $2
		ORDER BY effective_at DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates for %s: %w", currencyCode, err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rates: %w", err)
	}

	rates := make([]domain.ExchangeRate, len(modelRates))
	for i, m := range modelRates {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}
