package domain

// Currency represents a tenant-scoped currency.
// Exactly one currency per tenant may have IsBase set; all cross-currency
// conversions bridge through that base currency.
type Currency struct {
	TenantID      string `json:"tenantID"`
	CurrencyCode  string `json:"currencyCode"` // ISO 4217, e.g. "USD"; key within the tenant
	Name          string `json:"name"`         // e.g. "US Dollar"
	Symbol        string `json:"symbol"`       // e.g. "$"
	DecimalPlaces int32  `json:"decimalPlaces"`
	IsBase        bool   `json:"isBase"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}
