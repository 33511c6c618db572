package services

import (
	"context"
	"time"

	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/dto"
)

// PriceReaderSvc defines read operations for product price data
type PriceReaderSvc interface {
	// GetCurrentPrice retrieves the price currently in force for a variant.
	GetCurrentPrice(ctx context.Context, tenantID, variantID string) (*domain.ProductPrice, error)

	// PriceAsOf retrieves the price that was in force for a variant at a past
	// instant, falling back to the current price when no version predates it.
	PriceAsOf(ctx context.Context, tenantID, variantID string, at time.Time) (*domain.ProductPrice, error)

	// ListPriceHistory retrieves a variant's price versions, newest first.
	ListPriceHistory(ctx context.Context, tenantID, variantID string, limit int) ([]domain.ProductPrice, error)
}

// PriceWriterSvc defines write operations for product price data
type PriceWriterSvc interface {
	// SetCurrentPrice installs a new current price for a variant, closing out
	// the previous one. Fields omitted from the request inherit from the
	// price being replaced.
	SetCurrentPrice(ctx context.Context, tenantID string, req dto.SetPriceRequest, creatorUserID string) (*domain.ProductPrice, error)
}

// PriceSvcFacade combines all price-related service interfaces
type PriceSvcFacade interface {
	PriceReaderSvc
	PriceWriterSvc
}
