package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one immutable point on a currency's rate timeline.
// Rate expresses the currency's value relative to the tenant's base currency:
// amount_in_base = amount / rate, amount_from_base = base_amount * rate.
// Corrections are made by inserting a new point, never by editing history.
type ExchangeRate struct {
	RateID       string          `json:"rateID"`
	TenantID     string          `json:"tenantID"`
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"` // always > 0
	EffectiveAt  time.Time       `json:"effectiveAt"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// RateSource tells how a rate lookup was resolved.
type RateSource string

const (
	// RateSourceEffective means a rate point with effective_at <= the asked
	// instant was found.
	RateSourceEffective RateSource = "EFFECTIVE"
	// RateSourceLatest means no point predates the asked instant; the
	// currency's most recent rate was used instead.
	RateSourceLatest RateSource = "LATEST"
	// RateSourceUnity means the currency has no rates at all and 1 was
	// assumed. Logged as a data-quality event by the lookup.
	RateSourceUnity RateSource = "UNITY"
)

// RateLookup is the result of resolving "the rate effective at time T".
type RateLookup struct {
	Rate   decimal.Decimal
	Source RateSource
}

// Degraded reports whether the lookup had to fall back instead of finding a
// rate actually effective at the asked instant.
func (l RateLookup) Degraded() bool {
	return l.Source != RateSourceEffective
}
