package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Income     TransactionType = "INCOME"
	Expense    TransactionType = "EXPENSE"
	Transfer   TransactionType = "TRANSFER"
	Adjustment TransactionType = "ADJUSTMENT"
)

// PartyKind is the discriminator of a PartyRef.
type PartyKind string

const (
	PartyCustomer PartyKind = "CUSTOMER"
	PartyVendor   PartyKind = "VENDOR"
	PartyEmployee PartyKind = "EMPLOYEE"
	PartyMember   PartyKind = "MEMBER"
)

// PartyRef is a tagged reference to the counterpart of a monetary event.
type PartyRef struct {
	Kind PartyKind `json:"kind"`
	ID   string    `json:"id"`
}

// ParsePartyRef validates kind and id and builds a PartyRef.
func ParsePartyRef(kind, id string) (PartyRef, error) {
	switch PartyKind(kind) {
	case PartyCustomer, PartyVendor, PartyEmployee, PartyMember:
	default:
		return PartyRef{}, fmt.Errorf("unknown party kind %q", kind)
	}
	if id == "" {
		return PartyRef{}, fmt.Errorf("party id is required")
	}
	return PartyRef{Kind: PartyKind(kind), ID: id}, nil
}

// ReferenceKind names the kind of business document a ledger entry originates from.
type ReferenceKind string

const (
	RefSale              ReferenceKind = "SALE"
	RefPurchase          ReferenceKind = "PURCHASE"
	RefExpense           ReferenceKind = "EXPENSE"
	RefAdjustment        ReferenceKind = "ADJUSTMENT"
	RefReturn            ReferenceKind = "RETURN"
	RefCustomerStatement ReferenceKind = "CUSTOMER_STATEMENT"
	RefOther             ReferenceKind = "OTHER"
)

// Reference points to the originating business document of a ledger entry.
// The core never dereferences it; it is kept for audit and reconciliation.
type Reference struct {
	Kind ReferenceKind `json:"kind"`
	ID   *string       `json:"id,omitempty"`
}

// Transaction is one immutable row in the monetary ledger. There is no update
// or delete path; corrections are recorded as compensating entries linked via
// ReversedBy / Reverses.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	TenantID      string          `json:"tenantID"`
	Amount        decimal.Decimal `json:"amount"` // positive; sign derives from Type
	CurrencyCode  string          `json:"currencyCode"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	Party         *PartyRef       `json:"party,omitempty"`
	Reference     Reference       `json:"reference"`
	DrawerID      *string         `json:"drawerID,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"` // event date, not insert time
	IsDirect      bool            `json:"isDirect"`   // entered directly, not via a document
	ReversedBy    *string         `json:"reversedBy,omitempty"`
	Reverses      *string         `json:"reverses,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// IsReversal reports whether this entry compensates another one.
func (t Transaction) IsReversal() bool {
	return t.Reverses != nil
}

// PaymentMethod enumerates how money actually moved.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	MethodCheck        PaymentMethod = "CHECK"
	MethodOther        PaymentMethod = "OTHER"
)

// Payment records money actually received or paid for an event. It is written
// in the same atomic unit as its Transaction; the pair are two views of one
// monetary event.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	TenantID      string          `json:"tenantID"`
	PaymentNumber string          `json:"paymentNumber"` // PAY-YYYYMMDD-NNNN, unique per tenant
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Method        PaymentMethod   `json:"method"`
	Reference     Reference       `json:"reference"`
	DrawerID      *string         `json:"drawerID,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// StatementKind classifies a party statement row.
type StatementKind string

const (
	StatementCash     StatementKind = "CASH"     // settled on the spot
	StatementLoan     StatementKind = "LOAN"     // amount owed, carried on the party balance
	StatementReversal StatementKind = "REVERSAL" // compensates a prior statement
)

// Statement is one line on a party's account history, written alongside the
// ledger entry that settled or lent the amount.
type Statement struct {
	StatementID   string          `json:"statementID"`
	TenantID      string          `json:"tenantID"`
	TransactionID *string         `json:"transactionID,omitempty"`
	Party         PartyRef        `json:"party"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Kind          StatementKind   `json:"kind"`
	Reference     Reference       `json:"reference"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// PartyBalance is the running balance of one party, denominated in the
// tenant's base currency. Mutated only by the recorder.
type PartyBalance struct {
	TenantID     string          `json:"tenantID"`
	Party        PartyRef        `json:"party"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"` // the base currency code
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// SaleLine captures one sold line of a sale entry so cost-of-goods can later
// be derived with the price and rates in force on the sale date.
type SaleLine struct {
	LineID        string          `json:"lineID"`
	TenantID      string          `json:"tenantID"`
	TransactionID string          `json:"transactionID"`
	VariantID     string          `json:"variantID"`
	Quantity      decimal.Decimal `json:"quantity"`
	LineTotal     decimal.Decimal `json:"lineTotal"` // in the sale's currency
	CurrencyCode  string          `json:"currencyCode"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
