package dto

import (
	"github.com/easyshop/ledger/internal/core/domain"
)

// CreateCurrencyRequest defines the payload for creating a currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Name          string `json:"name" binding:"required"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int32  `json:"decimalPlaces" binding:"gte=0,lte=4"`
	IsBase        bool   `json:"isBase"`
}

// CurrencyResponse is the API representation of a currency.
type CurrencyResponse struct {
	CurrencyCode  string `json:"currencyCode"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int32  `json:"decimalPlaces"`
	IsBase        bool   `json:"isBase"`
	IsActive      bool   `json:"isActive"`
}

// ToCurrencyResponse converts a domain Currency to its response form.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Name:          c.Name,
		Symbol:        c.Symbol,
		DecimalPlaces: c.DecimalPlaces,
		IsBase:        c.IsBase,
		IsActive:      c.IsActive,
	}
}

// ToCurrencyResponses converts a slice of domain Currencies.
func ToCurrencyResponses(cs []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, len(cs))
	for i := range cs {
		out[i] = ToCurrencyResponse(&cs[i])
	}
	return out
}
