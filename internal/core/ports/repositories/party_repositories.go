package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/core/domain"
)

// PartyReader defines read operations for party balances and statements.
type PartyReader interface {
	// FindBalance retrieves a party's running balance in the tenant's base
	// currency. A party with no recorded movements reads as zero.
	FindBalance(ctx context.Context, tenantID string, party domain.PartyRef) (decimal.Decimal, error)

	// ListStatements retrieves a party's statement history, newest first.
	ListStatements(ctx context.Context, tenantID string, party domain.PartyRef, limit int, nextToken *string) ([]domain.Statement, *string, error)
}

// PartyWriter defines write operations for party balances.
type PartyWriter interface {
	// ApplyDeltaInTx atomically adds delta (base currency) to the party's
	// balance on an existing database transaction, creating the row at zero on
	// first movement.
	ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, tenantID string, party domain.PartyRef, delta decimal.Decimal) error
}

// PartyRepositoryFacade combines the party repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
