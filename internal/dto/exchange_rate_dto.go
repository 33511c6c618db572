package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// RecordRateRequest defines the payload for appending a rate point.
type RecordRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	EffectiveAt  time.Time       `json:"effectiveAt" binding:"required"`
}

// ExchangeRateResponse is the API representation of a rate point.
type ExchangeRateResponse struct {
	RateID       string          `json:"rateID"`
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	EffectiveAt  time.Time       `json:"effectiveAt"`
}

// ToExchangeRateResponse converts a domain ExchangeRate to its response form.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		RateID:       r.RateID,
		CurrencyCode: r.CurrencyCode,
		Rate:         r.Rate,
		EffectiveAt:  r.EffectiveAt,
	}
}

// ToExchangeRateResponses converts a slice of domain ExchangeRates.
func ToExchangeRateResponses(rs []domain.ExchangeRate) []ExchangeRateResponse {
	out := make([]ExchangeRateResponse, len(rs))
	for i := range rs {
		out[i] = ToExchangeRateResponse(&rs[i])
	}
	return out
}

// RateLookupResponse reports the rate in force at the asked instant and
// where it came from.
type RateLookupResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
	Degraded     bool            `json:"degraded"`
}

// ToRateLookupResponse converts a domain RateLookup to its response form.
func ToRateLookupResponse(currencyCode string, l *domain.RateLookup) RateLookupResponse {
	return RateLookupResponse{
		CurrencyCode: currencyCode,
		Rate:         l.Rate,
		Source:       string(l.Source),
		Degraded:     l.Degraded(),
	}
}

// ConvertParams carries the query parameters of a conversion request.
type ConvertParams struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	From   string          `form:"from" binding:"required,len=3,uppercase"`
	To     string          `form:"to" binding:"omitempty,len=3,uppercase"`
	At     *time.Time      `form:"at" time_format:"2006-01-02"` // defaults to now
}

// ConversionResponse is the API representation of a conversion result.
type ConversionResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	FromRate decimal.Decimal `json:"fromRate"`
	ToRate   decimal.Decimal `json:"toRate"`
	Degraded bool            `json:"degraded"`
}

// ToConversionResponse converts a domain Conversion to its response form.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		Amount:   c.Amount,
		FromRate: c.FromRate.Rate,
		ToRate:   c.ToRate.Rate,
		Degraded: c.Degraded(),
	}
}
