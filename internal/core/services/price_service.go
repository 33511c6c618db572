package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
)

// ErrPriceIncomplete is returned when a variant's first price omits fields
// that would otherwise inherit from a previous version.
var ErrPriceIncomplete = errors.New("first price of a variant must specify all fields")

// priceService maintains the price version ledger of product variants.
type priceService struct {
	priceRepo    portsrepo.PriceRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewPriceService creates a new PriceService.
func NewPriceService(priceRepo portsrepo.PriceRepositoryFacade, currencyRepo portsrepo.CurrencyReader) portssvc.PriceSvcFacade {
	return &priceService{priceRepo: priceRepo, currencyRepo: currencyRepo}
}

var _ portssvc.PriceSvcFacade = (*priceService)(nil)

// SetCurrentPrice installs a new current price for a variant. Fields omitted
// from the request inherit from the version being replaced, so callers can
// adjust only the selling price without restating cost. The close-and-insert
// runs as one atomic step in the repository.
func (s *priceService) SetCurrentPrice(ctx context.Context, tenantID string, req dto.SetPriceRequest, creatorUserID string) (*domain.ProductPrice, error) {
	now := time.Now().UTC()

	prev, err := s.priceRepo.FindCurrentPrice(ctx, tenantID, req.VariantID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load current price: %w", err)
	}

	newPrice := domain.ProductPrice{
		PriceID:     uuid.NewString(),
		TenantID:    tenantID,
		VariantID:   req.VariantID,
		EffectiveAt: now,
		IsCurrent:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.EffectiveAt != nil {
		newPrice.EffectiveAt = req.EffectiveAt.UTC()
	}

	// Inherit omitted fields from the version being replaced.
	if prev != nil {
		newPrice.CostPrice = prev.CostPrice
		newPrice.CostCurrency = prev.CostCurrency
		newPrice.SellingPrice = prev.SellingPrice
		newPrice.SellingCurrency = prev.SellingCurrency
	}
	if req.CostPrice != nil {
		newPrice.CostPrice = *req.CostPrice
	}
	if req.CostCurrency != nil {
		newPrice.CostCurrency = *req.CostCurrency
	}
	if req.SellingPrice != nil {
		newPrice.SellingPrice = *req.SellingPrice
	}
	if req.SellingCurrency != nil {
		newPrice.SellingCurrency = *req.SellingCurrency
	}

	if newPrice.CostCurrency == "" || newPrice.SellingCurrency == "" {
		return nil, fmt.Errorf("%w: variant %s", ErrPriceIncomplete, req.VariantID)
	}

	for _, code := range []string{newPrice.CostCurrency, newPrice.SellingCurrency} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, tenantID, code); err != nil {
			return nil, fmt.Errorf("failed to load currency %s: %w", code, err)
		}
	}

	if err := s.priceRepo.ReplaceCurrentPrice(ctx, newPrice); err != nil {
		return nil, fmt.Errorf("failed to replace current price: %w", err)
	}
	return &newPrice, nil
}

func (s *priceService) GetCurrentPrice(ctx context.Context, tenantID, variantID string) (*domain.ProductPrice, error) {
	price, err := s.priceRepo.FindCurrentPrice(ctx, tenantID, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current price: %w", err)
	}
	return price, nil
}

// PriceAsOf resolves the price version in force at the given instant. When no
// version predates the instant it falls back to the variant's current row, so
// a sale dated before the first price still resolves to a cost.
func (s *priceService) PriceAsOf(ctx context.Context, tenantID, variantID string, at time.Time) (*domain.ProductPrice, error) {
	price, err := s.priceRepo.FindPriceAsOf(ctx, tenantID, variantID, at)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get price as of %s: %w", at.Format(time.RFC3339), err)
	}

	current, err := s.priceRepo.FindCurrentPrice(ctx, tenantID, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get price as of %s: %w", at.Format(time.RFC3339), err)
	}
	middleware.GetLoggerFromCtx(ctx).Warn("No price version predates instant, using current",
		slog.String("tenant_id", tenantID),
		slog.String("variant_id", variantID),
		slog.Time("at", at),
	)
	return current, nil
}

func (s *priceService) ListPriceHistory(ctx context.Context, tenantID, variantID string, limit int) ([]domain.ProductPrice, error) {
	history, err := s.priceRepo.ListPriceHistory(ctx, tenantID, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}
	if history == nil {
		return []domain.ProductPrice{}, nil
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}
