package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/models"
	"github.com/easyshop/ledger/internal/utils/mapping"
	"github.com/easyshop/ledger/internal/utils/pagination"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party balances and statements.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// FindBalance retrieves a party's running balance in base currency. A party
// with no recorded movements reads as zero.
func (r *PgxPartyRepository) FindBalance(ctx context.Context, tenantID string, party domain.PartyRef) (decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM party_balances
		WHERE tenant_id = $1 AND party_type = $2 AND party_id = $3;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, tenantID, string(party.Kind), party.ID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to find balance of party %s/%s: %w", party.Kind, party.ID, err)
	}
	return balance, nil
}

// ApplyDeltaInTx atomically adds delta to the party's balance on an existing
// database transaction, creating the row at the delta on first movement.
func (r *PgxPartyRepository) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, tenantID string, party domain.PartyRef, delta decimal.Decimal) error {
	query := `
		INSERT INTO party_balances (tenant_id, party_type, party_id, balance, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (tenant_id, party_type, party_id)
		DO UPDATE SET balance = party_balances.balance + EXCLUDED.balance, updated_at = NOW();
	`
	if _, err := tx.Exec(ctx, query, tenantID, string(party.Kind), party.ID, delta); err != nil {
		return fmt.Errorf("failed to apply balance delta to party %s/%s: %w", party.Kind, party.ID, classifyPgError(err))
	}
	return nil
}

const statementColumns = `statement_id, tenant_id, transaction_id, party_type, party_id, amount, currency_code, statement_type, reference_type, reference_id, occurred_at, notes, created_at, created_by`

// ListStatements retrieves a keyset-paginated page of a party's statement
// history, newest first.
func (r *PgxPartyRepository) ListStatements(ctx context.Context, tenantID string, party domain.PartyRef, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + statementColumns + `
		FROM party_statements
		WHERE tenant_id = $1 AND party_type = $2 AND party_id = $3
	`
	orderByClause := `ORDER BY occurred_at DESC, created_at DESC`

	args := []interface{}{tenantID, string(party.Kind), party.ID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (occurred_at, created_at) < ($4, $5)`
		args = append(args, lastOccurredAt, lastCreatedAt)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query statements of party %s/%s: %w", party.Kind, party.ID, err)
	}
	defer rows.Close()

	modelStatements := make([]models.Statement, 0, fetchLimit)
	for rows.Next() {
		var m models.Statement
		if err := rows.Scan(
			&m.StatementID,
			&m.TenantID,
			&m.TransactionID,
			&m.PartyType,
			&m.PartyID,
			&m.Amount,
			&m.CurrencyCode,
			&m.Kind,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.OccurredAt,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		modelStatements = append(modelStatements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating statement rows: %w", err)
	}

	var newToken *string
	if len(modelStatements) > limit {
		modelStatements = modelStatements[:limit]
		last := modelStatements[len(modelStatements)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		newToken = &token
	}

	statements := make([]domain.Statement, len(modelStatements))
	for i, m := range modelStatements {
		statements[i] = mapping.ToDomainStatement(m)
	}
	return statements, newToken, nil
}
