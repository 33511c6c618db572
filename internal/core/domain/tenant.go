package domain

// Tenant represents an isolated customer organization. All monetary data is
// scoped to exactly one tenant; services reject calls with an empty tenant ID.
type Tenant struct {
	TenantID string `json:"tenantID"` // Primary Key (e.g., UUID)
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
