package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/utils/money"
)

// conversionService values amounts across tenant currencies. Every conversion
// bridges through the tenant's base currency: amount_in_base = amount / rate,
// amount_in_target = amount_in_base * target_rate. There are no direct pair
// rates.
type conversionService struct {
	rateSvc      portssvc.RateTimelineReaderSvc
	currencyRepo portsrepo.CurrencyReader
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rateSvc portssvc.RateTimelineReaderSvc, currencyRepo portsrepo.CurrencyReader) portssvc.ConversionSvc {
	return &conversionService{rateSvc: rateSvc, currencyRepo: currencyRepo}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) ConvertToBase(ctx context.Context, tenantID string, amount decimal.Decimal, fromCode string, at time.Time) (*domain.Conversion, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if fromCode == base.CurrencyCode {
		unity := domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective}
		return &domain.Conversion{Amount: amount, FromRate: unity, ToRate: unity}, nil
	}

	fromRate, err := s.rateSvc.RateAt(ctx, tenantID, fromCode, at)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate for %s: %w", fromCode, err)
	}

	converted := money.Round(amount.Div(fromRate.Rate), base.DecimalPlaces)
	return &domain.Conversion{
		Amount:   converted,
		FromRate: *fromRate,
		ToRate:   domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective},
	}, nil
}

func (s *conversionService) Convert(ctx context.Context, tenantID string, amount decimal.Decimal, fromCode, toCode string, at time.Time) (*domain.Conversion, error) {
	if fromCode == toCode {
		unity := domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective}
		return &domain.Conversion{Amount: amount, FromRate: unity, ToRate: unity}, nil
	}

	base, err := s.currencyRepo.FindBaseCurrency(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	fromRate := domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective}
	if fromCode != base.CurrencyCode {
		r, err := s.rateSvc.RateAt(ctx, tenantID, fromCode, at)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve rate for %s: %w", fromCode, err)
		}
		fromRate = *r
	}

	toRate := domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective}
	if toCode != base.CurrencyCode {
		r, err := s.rateSvc.RateAt(ctx, tenantID, toCode, at)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve rate for %s: %w", toCode, err)
		}
		toRate = *r
	}

	precision := currencyPrecision(ctx, s.currencyRepo, tenantID, toCode)
	converted := money.Round(amount.Div(fromRate.Rate).Mul(toRate.Rate), precision)

	return &domain.Conversion{Amount: converted, FromRate: fromRate, ToRate: toRate}, nil
}
