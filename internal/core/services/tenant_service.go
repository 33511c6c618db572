package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
)

// tenantService provides tenant registry operations.
type tenantService struct {
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tenantRepo}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) CreateTenant(ctx context.Context, name string, creatorUserID string) (*domain.Tenant, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: tenant name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		TenantID: uuid.NewString(),
		Name:     name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return &tenant, nil
}

func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

func (s *tenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	if tenants == nil {
		return []domain.Tenant{}, nil
	}
	return tenants, nil
}

func (s *tenantService) DeactivateTenant(ctx context.Context, tenantID string, updaterUserID string) error {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get tenant for deactivation: %w", err)
	}
	if !tenant.IsActive {
		return nil // already inactive, nothing to do
	}

	tenant.IsActive = false
	tenant.LastUpdatedAt = time.Now().UTC()
	tenant.LastUpdatedBy = updaterUserID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}
	return nil
}
