package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// DrawerDelta is the signed cash movement one ledger entry applies to a drawer.
type DrawerDelta struct {
	DrawerID     string
	CurrencyCode string
	Delta        decimal.Decimal
}

// PartyDelta is the signed balance movement one ledger entry applies to a
// party, already converted to the tenant's base currency.
type PartyDelta struct {
	Party domain.PartyRef
	Delta decimal.Decimal
}

// EntryRecord bundles everything one monetary event writes. SaveEntry persists
// the whole record in a single database transaction: a failure at any step
// leaves no partial state.
type EntryRecord struct {
	Transaction domain.Transaction
	// Payment, when set, is the parallel payment row for the same event. Its
	// PaymentNumber is generated inside the transaction and filled in on save.
	Payment     *domain.Payment
	Statements  []domain.Statement
	SaleLines   []domain.SaleLine
	DrawerDelta *DrawerDelta
	PartyDelta  *PartyDelta
	// MarksReversed, when set, links the named prior transaction to this one
	// (reversed_by) as part of the same atomic unit.
	MarksReversed *string
}

// TransactionFilter narrows a ledger listing. Nil fields match everything.
type TransactionFilter struct {
	Type     *domain.TransactionType
	DrawerID *string
	Party    *domain.PartyRef
	From     *time.Time
	To       *time.Time
}

// LedgerReader defines read operations over the transaction/payment ledger.
type LedgerReader interface {
	// FindTransactionByID retrieves a ledger entry by its identifier.
	FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a keyset-paginated list of a tenant's ledger
	// entries, newest first. Returns the entries and a token for the next page.
	ListTransactions(ctx context.Context, tenantID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindPaymentsByReference retrieves the payments recorded for a business document.
	FindPaymentsByReference(ctx context.Context, tenantID string, ref domain.Reference) ([]domain.Payment, error)

	// FindLoanStatement retrieves the outstanding loan statement written by a
	// ledger entry, or apperrors.ErrNotFound.
	FindLoanStatement(ctx context.Context, tenantID, transactionID string) (*domain.Statement, error)
}

// LedgerWriter defines the single write path into the ledger.
type LedgerWriter interface {
	// SaveEntry persists an entry record atomically: transaction row, optional
	// payment row, statements, sale lines, drawer balance adjustment, party
	// balance adjustment and reversal link all commit or roll back together.
	SaveEntry(ctx context.Context, rec *EntryRecord) error
}

// LedgerRepositoryFacade combines the ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction management.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
