package repositories

import (
	"context"
	"time"

	"github.com/easyshop/ledger/internal/core/domain"
)

// ExchangeRateReader defines read operations over the rate timeline.
type ExchangeRateReader interface {
	// FindRateAt retrieves the rate point with the greatest effective_at <= at
	// for the currency, ties broken by insertion order (last write wins).
	// Returns apperrors.ErrNotFound when no point predates the instant.
	FindRateAt(ctx context.Context, tenantID, currencyCode string, at time.Time) (*domain.ExchangeRate, error)

	// FindLatestRate retrieves the currency's most recent rate point
	// regardless of time. Returns apperrors.ErrNotFound when the currency has
	// no rates at all.
	FindLatestRate(ctx context.Context, tenantID, currencyCode string) (*domain.ExchangeRate, error)

	// ListRates retrieves a currency's full timeline, newest first.
	ListRates(ctx context.Context, tenantID, currencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations over the rate timeline.
// There is intentionally no update or delete: corrections are new points.
type ExchangeRateWriter interface {
	// SaveRate appends a new immutable rate point.
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
