package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/models"
	"github.com/easyshop/ledger/internal/utils/mapping"
)

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant inserts a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := mapping.ToModelTenant(tenant)
	query := `
		INSERT INTO tenants (tenant_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.IsActive,
		modelTenant.CreatedAt,
		modelTenant.CreatedBy,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)
	if err != nil {
		if classified := classifyPgError(err); errors.Is(classified, apperrors.ErrDuplicate) {
			return fmt.Errorf("tenant %s: %w", modelTenant.TenantID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save tenant %s: %w", modelTenant.TenantID, err)
	}
	return nil
}

// UpdateTenant persists changes to an existing tenant.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := mapping.ToModelTenant(tenant)
	query := `
		UPDATE tenants
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.IsActive,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant %s: %w", modelTenant.TenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTenantByID retrieves a tenant by its identifier.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&m.TenantID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

// ListTenants retrieves all tenants ordered by name.
func (r *PgxTenantRepository) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	modelTenants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tenant, error) {
		var m models.Tenant
		err := row.Scan(&m.TenantID, &m.Name, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenants: %w", err)
	}

	tenants := make([]domain.Tenant, len(modelTenants))
	for i, m := range modelTenants {
		tenants[i] = mapping.ToDomainTenant(m)
	}
	return tenants, nil
}
