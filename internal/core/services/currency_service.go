package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
)

// currencyService provides currency registry operations.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, tenantID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	// Code format already validated by DTO binding (required, len=3, uppercase)
	now := time.Now().UTC()

	currency := domain.Currency{
		TenantID:      tenantID,
		CurrencyCode:  req.CurrencyCode,
		Name:          req.Name,
		Symbol:        req.Symbol,
		DecimalPlaces: req.DecimalPlaces,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	// Only an explicit request makes a currency base. A tenant with no base
	// currency keeps failing conversions until one is chosen.
	if req.IsBase {
		if err := s.currencyRepo.SetBaseCurrency(ctx, tenantID, req.CurrencyCode, creatorUserID); err != nil {
			return nil, fmt.Errorf("failed to set base currency: %w", err)
		}
		currency.IsBase = true
	}

	return &currency, nil
}

func (s *currencyService) SetBaseCurrency(ctx context.Context, tenantID, currencyCode string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, tenantID, currencyCode); err != nil {
		return fmt.Errorf("failed to load currency %s: %w", currencyCode, err)
	}

	if err := s.currencyRepo.SetBaseCurrency(ctx, tenantID, currencyCode, updaterUserID); err != nil {
		return fmt.Errorf("failed to set base currency: %w", err)
	}

	logger.Info("Base currency changed", slog.String("tenant_id", tenantID), slog.String("currency_code", currencyCode))
	return nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, tenantID, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

func (s *currencyService) GetBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx, tenantID)
	if err != nil {
		return nil, err // keep apperrors.ErrNoBaseCurrency recognizable
	}
	return base, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// currencyPrecision returns the decimal places to round amounts in the given
// currency to, defaulting to 2 when the currency is not registered.
func currencyPrecision(ctx context.Context, repo portsrepo.CurrencyReader, tenantID, currencyCode string) int32 {
	currency, err := repo.FindCurrencyByCode(ctx, tenantID, currencyCode)
	if err != nil || currency == nil {
		return 2
	}
	return currency.DecimalPlaces
}
