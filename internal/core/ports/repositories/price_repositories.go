package repositories

import (
	"context"
	"time"

	"github.com/easyshop/ledger/internal/core/domain"
)

// PriceReader defines read operations for the price version ledger.
type PriceReader interface {
	// FindCurrentPrice retrieves the variant's current price row, or
	// apperrors.ErrNotFound when the variant has never been priced.
	FindCurrentPrice(ctx context.Context, tenantID, variantID string) (*domain.ProductPrice, error)

	// FindPriceAsOf retrieves the price version in force at the given instant:
	// the most recent row with effective_at <= at, preferring rows still open
	// (end_at null) or ending at/after the instant.
	FindPriceAsOf(ctx context.Context, tenantID, variantID string, at time.Time) (*domain.ProductPrice, error)

	// ListPriceHistory retrieves all price versions of a variant, newest first.
	ListPriceHistory(ctx context.Context, tenantID, variantID string) ([]domain.ProductPrice, error)
}

// PriceWriter defines write operations for the price version ledger.
type PriceWriter interface {
	// ReplaceCurrentPrice ends the variant's current price row (is_current
	// false, end_at set when null) and inserts newPrice as the current row, in
	// one database transaction.
	ReplaceCurrentPrice(ctx context.Context, newPrice domain.ProductPrice) error
}

// PriceRepositoryFacade combines all price repository interfaces.
type PriceRepositoryFacade interface {
	PriceReader
	PriceWriter
}
