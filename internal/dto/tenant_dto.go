package dto

import (
	"github.com/easyshop/ledger/internal/core/domain"
)

// CreateTenantRequest defines the payload for registering a tenant.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// TenantResponse is the API representation of a tenant.
type TenantResponse struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// ToTenantResponse converts a domain Tenant to its response form.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID: t.TenantID,
		Name:     t.Name,
		IsActive: t.IsActive,
	}
}

// ToTenantResponses converts a slice of domain Tenants.
func ToTenantResponses(ts []domain.Tenant) []TenantResponse {
	out := make([]TenantResponse, len(ts))
	for i := range ts {
		out[i] = ToTenantResponse(&ts[i])
	}
	return out
}
