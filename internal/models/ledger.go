package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	TenantID      string          `db:"tenant_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	Type          string          `db:"transaction_type"`
	Description   string          `db:"description"`
	PartyType     *string         `db:"party_type"`
	PartyID       *string         `db:"party_id"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	DrawerID      *string         `db:"cash_drawer_id"`
	OccurredAt    time.Time       `db:"occurred_at"`
	IsDirect      bool            `db:"is_direct"`
	ReversedBy    *string         `db:"reversed_by"`
	Reverses      *string         `db:"reverses"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}

// Payment mirrors the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	TenantID      string          `db:"tenant_id"`
	PaymentNumber string          `db:"payment_number"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	Method        string          `db:"payment_method"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	DrawerID      *string         `db:"cash_drawer_id"`
	OccurredAt    time.Time       `db:"occurred_at"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}

// Statement mirrors the party_statements table.
type Statement struct {
	StatementID   string          `db:"statement_id"`
	TenantID      string          `db:"tenant_id"`
	TransactionID *string         `db:"transaction_id"`
	PartyType     string          `db:"party_type"`
	PartyID       string          `db:"party_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	Kind          string          `db:"statement_type"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	OccurredAt    time.Time       `db:"occurred_at"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}

// SaleLine mirrors the sale_lines table.
type SaleLine struct {
	LineID        string          `db:"line_id"`
	TenantID      string          `db:"tenant_id"`
	TransactionID string          `db:"transaction_id"`
	VariantID     string          `db:"variant_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	LineTotal     decimal.Decimal `db:"line_total"`
	CurrencyCode  string          `db:"currency_code"`
	OccurredAt    time.Time       `db:"occurred_at"`
}
