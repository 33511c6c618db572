package services

import (
	"context"

	"github.com/easyshop/ledger/internal/core/domain"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// GetTenantByID retrieves a tenant by its identifier.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all registered tenants.
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// CreateTenant registers a new tenant.
	CreateTenant(ctx context.Context, name string, creatorUserID string) (*domain.Tenant, error)

	// DeactivateTenant marks a tenant inactive without removing its data.
	DeactivateTenant(ctx context.Context, tenantID string, updaterUserID string) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
}
