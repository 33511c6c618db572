package domain

import "github.com/shopspring/decimal"

// Conversion is the result of valuing an amount in another currency.
// FromRate and ToRate are the lookups that were bridged through the base
// currency; either may be degraded when the timeline has gaps.
type Conversion struct {
	Amount   decimal.Decimal
	FromRate RateLookup
	ToRate   RateLookup
}

// Degraded reports whether any rate on either side of the bridge was a
// fallback rather than an effective rate.
func (c Conversion) Degraded() bool {
	return c.FromRate.Degraded() || c.ToRate.Degraded()
}
