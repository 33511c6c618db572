package services

import (
	"context"

	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/dto"
)

// RecorderReaderSvc defines read operations over recorded ledger entries
type RecorderReaderSvc interface {
	// GetTransactionByID retrieves a single ledger entry.
	GetTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of ledger entries, newest
	// first, with a token for the next page.
	ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)

	// GetPaymentsByReference retrieves the payments recorded against a
	// reference document.
	GetPaymentsByReference(ctx context.Context, tenantID string, ref domain.Reference) ([]domain.Payment, error)
}

// RecorderWriterSvc defines write operations over the ledger
type RecorderWriterSvc interface {
	// RecordEntry validates and persists a ledger entry together with its
	// payment leg, drawer movement, party statements and sale lines, all in
	// one atomic unit.
	RecordEntry(ctx context.Context, tenantID string, req dto.RecordEntryRequest, creatorUserID string) (*domain.Transaction, error)

	// ReverseEntry records a compensating entry that undoes a prior entry's
	// monetary effects and links the two. An already reversed entry cannot
	// be reversed again.
	ReverseEntry(ctx context.Context, tenantID, transactionID string, creatorUserID string) (*domain.Transaction, error)
}

// RecorderSvcFacade combines all ledger recording service interfaces
type RecorderSvcFacade interface {
	RecorderReaderSvc
	RecorderWriterSvc
}

// PartySvcFacade defines read operations over party balances and statements
type PartySvcFacade interface {
	// GetBalance retrieves a party's running balance in base currency. A
	// party with no recorded activity reads as zero.
	GetBalance(ctx context.Context, tenantID string, party domain.PartyRef) (*domain.PartyBalance, error)

	// ListStatements retrieves a page of a party's statement history, newest
	// first, with a token for the next page.
	ListStatements(ctx context.Context, tenantID string, party domain.PartyRef, limit int, nextToken string) ([]domain.Statement, string, error)
}
