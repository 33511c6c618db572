package repositories

import (
	"context"

	"github.com/easyshop/ledger/internal/core/domain"
)

// CurrencyReader defines read operations for currency data.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by tenant and ISO code.
	FindCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the tenant's base currency.
	// Returns apperrors.ErrNoBaseCurrency when none is configured.
	FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies of a tenant.
	ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// SetBaseCurrency marks the given currency as the tenant's base and unsets
	// the previous base in the same database transaction.
	SetBaseCurrency(ctx context.Context, tenantID, currencyCode, updatedBy string) error
}

// CurrencyRepositoryFacade combines all currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
