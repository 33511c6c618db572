package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error)

	// GetBaseCurrency retrieves the tenant's base currency.
	GetBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies registered for the tenant.
	ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency for the tenant.
	CreateCurrency(ctx context.Context, tenantID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// SetBaseCurrency designates the tenant's base currency, demoting any previous one.
	SetBaseCurrency(ctx context.Context, tenantID, currencyCode string, updaterUserID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// RateTimelineReaderSvc defines read operations over the exchange rate timeline
type RateTimelineReaderSvc interface {
	// RateAt resolves the rate in force for a currency at a point in time.
	// The lookup records whether a fallback rate had to be used.
	RateAt(ctx context.Context, tenantID, currencyCode string, at time.Time) (*domain.RateLookup, error)

	// CurrentRate resolves the rate in force right now.
	CurrentRate(ctx context.Context, tenantID, currencyCode string) (*domain.RateLookup, error)

	// ListRates retrieves the recorded rate history for a currency, newest first.
	ListRates(ctx context.Context, tenantID, currencyCode string, limit int) ([]domain.ExchangeRate, error)
}

// RateTimelineWriterSvc defines write operations over the exchange rate timeline
type RateTimelineWriterSvc interface {
	// RecordRate appends a rate observation to the timeline.
	RecordRate(ctx context.Context, tenantID string, req dto.RecordRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// RateTimelineSvcFacade combines all rate timeline service interfaces
type RateTimelineSvcFacade interface {
	RateTimelineReaderSvc
	RateTimelineWriterSvc
}

// ConversionSvc converts amounts between tenant currencies through the base currency.
type ConversionSvc interface {
	// Convert values an amount in one currency as another currency at a point in time.
	Convert(ctx context.Context, tenantID string, amount decimal.Decimal, fromCode, toCode string, at time.Time) (*domain.Conversion, error)

	// ConvertToBase values an amount in the tenant's base currency at a point in time.
	ConvertToBase(ctx context.Context, tenantID string, amount decimal.Decimal, fromCode string, at time.Time) (*domain.Conversion, error)
}
