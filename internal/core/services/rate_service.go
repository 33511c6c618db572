package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
)

// ErrRateNotPositive is returned when a recorded rate is zero or negative.
var ErrRateNotPositive = errors.New("exchange rate must be greater than zero")

// rateService maintains the append-only exchange rate timeline and resolves
// point-in-time lookups against it.
type rateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyReader) portssvc.RateTimelineSvcFacade {
	return &rateService{rateRepo: rateRepo, currencyRepo: currencyRepo}
}

var _ portssvc.RateTimelineSvcFacade = (*rateService)(nil)

func (s *rateService) RecordRate(ctx context.Context, tenantID string, req dto.RecordRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrRateNotPositive, req.Rate.String())
	}

	// The currency must be registered for the tenant before it gets rates.
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, tenantID, req.CurrencyCode); err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", req.CurrencyCode, err)
	}

	rate := domain.ExchangeRate{
		RateID:       uuid.NewString(),
		TenantID:     tenantID,
		CurrencyCode: req.CurrencyCode,
		Rate:         req.Rate,
		EffectiveAt:  req.EffectiveAt.UTC(),
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    creatorUserID,
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to record rate: %w", err)
	}
	return &rate, nil
}

// RateAt resolves the rate in force at the given instant. When no point
// predates the instant it falls back to the currency's latest rate, and when
// the currency has no rates at all it assumes parity with the base currency.
// Both fallbacks are flagged on the result and logged as data-quality events.
func (s *rateService) RateAt(ctx context.Context, tenantID, currencyCode string, at time.Time) (*domain.RateLookup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, err := s.rateRepo.FindRateAt(ctx, tenantID, currencyCode, at)
	if err == nil {
		return &domain.RateLookup{Rate: rate.Rate, Source: domain.RateSourceEffective}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve rate at %s: %w", at.Format(time.RFC3339), err)
	}

	latest, err := s.rateRepo.FindLatestRate(ctx, tenantID, currencyCode)
	if err == nil {
		logger.Warn("No rate effective at instant, using latest",
			slog.String("tenant_id", tenantID),
			slog.String("currency_code", currencyCode),
			slog.Time("at", at),
		)
		return &domain.RateLookup{Rate: latest.Rate, Source: domain.RateSourceLatest}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve latest rate: %w", err)
	}

	logger.Warn("Currency has no rates at all, assuming parity with base",
		slog.String("tenant_id", tenantID),
		slog.String("currency_code", currencyCode),
	)
	return &domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceUnity}, nil
}

func (s *rateService) CurrentRate(ctx context.Context, tenantID, currencyCode string) (*domain.RateLookup, error) {
	return s.RateAt(ctx, tenantID, currencyCode, time.Now().UTC())
}

func (s *rateService) ListRates(ctx context.Context, tenantID, currencyCode string, limit int) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx, tenantID, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	if limit > 0 && len(rates) > limit {
		rates = rates[:limit]
	}
	return rates, nil
}
