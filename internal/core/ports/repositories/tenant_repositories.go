package repositories

import (
	"context"

	"github.com/easyshop/ledger/internal/core/domain"
)

// TenantReader defines read operations for tenant data.
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all registered tenants.
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data.
type TenantWriter interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// UpdateTenant persists changes to an existing tenant.
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error
}

// TenantRepositoryFacade combines all tenant repository interfaces.
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
