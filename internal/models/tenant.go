package models

// Tenant mirrors the tenants table.
type Tenant struct {
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
