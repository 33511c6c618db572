package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// PartyRefRequest identifies the counterparty of an entry.
type PartyRefRequest struct {
	Kind string `json:"kind" binding:"required,oneof=CUSTOMER VENDOR EMPLOYEE MEMBER"`
	ID   string `json:"id" binding:"required"`
}

// ReferenceRequest ties an entry back to its originating document.
type ReferenceRequest struct {
	Kind string  `json:"kind" binding:"required,oneof=SALE PURCHASE EXPENSE ADJUSTMENT RETURN CUSTOMER_STATEMENT OTHER"`
	ID   *string `json:"id,omitempty"`
}

// PaymentRequest describes the payment leg of an entry.
type PaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=CASH CARD BANK_TRANSFER MOBILE_MONEY CHECK OTHER"`
}

// SaleLineRequest is one sold line carried alongside a sale entry.
type SaleLineRequest struct {
	VariantID string          `json:"variantID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	LineTotal decimal.Decimal `json:"lineTotal" binding:"required"`
}

// RecordEntryRequest defines the payload for recording a ledger entry.
type RecordEntryRequest struct {
	Amount       decimal.Decimal   `json:"amount" binding:"required"`
	CurrencyCode string            `json:"currencyCode" binding:"required,len=3,uppercase"`
	Type         string            `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT"`
	Description  string            `json:"description" binding:"max=255"`
	Party        *PartyRefRequest  `json:"party,omitempty"`
	Reference    *ReferenceRequest `json:"reference,omitempty"`
	DrawerID     *string           `json:"drawerID,omitempty"`
	Payment      *PaymentRequest   `json:"payment,omitempty"`
	// UnsettledAmount is the portion of a sale left on the party's account.
	UnsettledAmount *decimal.Decimal  `json:"unsettledAmount,omitempty"`
	Lines           []SaleLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
	OccurredAt      *time.Time        `json:"occurredAt,omitempty"` // defaults to now
	IsDirect        bool              `json:"isDirect"`
}

// ListTransactionsParams carries query filters for transaction listing.
type ListTransactionsParams struct {
	Type      *string    `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER ADJUSTMENT"`
	DrawerID  *string    `form:"drawerID"`
	PartyKind *string    `form:"partyKind" binding:"omitempty,oneof=CUSTOMER VENDOR EMPLOYEE MEMBER"`
	PartyID   *string    `form:"partyID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string     `form:"nextToken"`
}

// TransactionResponse is the API representation of a ledger entry.
type TransactionResponse struct {
	TransactionID string            `json:"transactionID"`
	Amount        decimal.Decimal   `json:"amount"`
	CurrencyCode  string            `json:"currencyCode"`
	Type          string            `json:"type"`
	Description   string            `json:"description,omitempty"`
	Party         *PartyRefRequest  `json:"party,omitempty"`
	Reference     *ReferenceRequest `json:"reference,omitempty"`
	DrawerID      *string           `json:"drawerID,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
	IsDirect      bool              `json:"isDirect"`
	ReversedBy    *string           `json:"reversedBy,omitempty"`
	Reverses      *string           `json:"reverses,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// TransactionListResponse wraps a page of transactions.
type TransactionListResponse struct {
	Items     []TransactionResponse `json:"items"`
	NextToken string                `json:"nextToken,omitempty"`
}

// PaymentResponse is the API representation of a payment leg.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	PaymentNumber string          `json:"paymentNumber"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// PartyBalanceResponse is the running balance of a party in base currency.
type PartyBalanceResponse struct {
	PartyKind    string          `json:"partyKind"`
	PartyID      string          `json:"partyID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// StatementResponse is one line of a party's statement history.
type StatementResponse struct {
	StatementID   string          `json:"statementID"`
	Kind          string          `json:"kind"`
	TransactionID *string         `json:"transactionID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// StatementListResponse wraps a page of statements.
type StatementListResponse struct {
	Items     []StatementResponse `json:"items"`
	NextToken string              `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain Transaction to its response form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		Type:          string(t.Type),
		Description:   t.Description,
		DrawerID:      t.DrawerID,
		OccurredAt:    t.OccurredAt,
		IsDirect:      t.IsDirect,
		ReversedBy:    t.ReversedBy,
		Reverses:      t.Reverses,
		CreatedAt:     t.CreatedAt,
	}
	if t.Party != nil {
		resp.Party = &PartyRefRequest{Kind: string(t.Party.Kind), ID: t.Party.ID}
	}
	if t.Reference.Kind != "" {
		resp.Reference = &ReferenceRequest{Kind: string(t.Reference.Kind), ID: t.Reference.ID}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain Transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}

// ToPaymentResponse converts a domain Payment to its response form.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		PaymentNumber: p.PaymentNumber,
		Method:        string(p.Method),
		Amount:        p.Amount,
		CurrencyCode:  p.CurrencyCode,
		OccurredAt:    p.OccurredAt,
	}
}

// ToPaymentResponses converts a slice of domain Payments.
func ToPaymentResponses(ps []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(ps))
	for i := range ps {
		out[i] = ToPaymentResponse(&ps[i])
	}
	return out
}

// ToPartyBalanceResponse converts a domain PartyBalance.
func ToPartyBalanceResponse(b *domain.PartyBalance) PartyBalanceResponse {
	return PartyBalanceResponse{
		PartyKind:    string(b.Party.Kind),
		PartyID:      b.Party.ID,
		Balance:      b.Balance,
		CurrencyCode: b.CurrencyCode,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToStatementResponse converts a domain Statement.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		StatementID:   s.StatementID,
		Kind:          string(s.Kind),
		TransactionID: s.TransactionID,
		Amount:        s.Amount,
		CurrencyCode:  s.CurrencyCode,
		Description:   s.Notes,
		OccurredAt:    s.OccurredAt,
	}
}

// ToStatementResponses converts a slice of domain Statements.
func ToStatementResponses(ss []domain.Statement) []StatementResponse {
	out := make([]StatementResponse, len(ss))
	for i := range ss {
		out[i] = ToStatementResponse(&ss[i])
	}
	return out
}
