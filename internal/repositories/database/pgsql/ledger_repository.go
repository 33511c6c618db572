package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/models"
	"github.com/easyshop/ledger/internal/utils/mapping"
	"github.com/easyshop/ledger/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	drawerRepo portsrepo.DrawerWriter
	partyRepo  portsrepo.PartyWriter
}

// newPgxLedgerRepository creates a new repository for the transaction/payment ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool, drawerRepo portsrepo.DrawerWriter, partyRepo portsrepo.PartyWriter) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		drawerRepo:     drawerRepo,
		partyRepo:      partyRepo,
	}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, tenant_id, amount, currency_code, transaction_type, description, party_type, party_id, reference_type, reference_id, cash_drawer_id, occurred_at, is_direct, reversed_by, reverses, created_at, created_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TenantID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Type,
		&m.Description,
		&m.PartyType,
		&m.PartyID,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.DrawerID,
		&m.OccurredAt,
		&m.IsDirect,
		&m.ReversedBy,
		&m.Reverses,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveEntry persists an entry record atomically. The transaction row, reversal
// link, payment leg, party statements, sale lines, drawer movement and party
// balance movement all commit or roll back together.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, rec *portsrepo.EntryRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Insert the transaction row.
	m := mapping.ToModelTransaction(rec.Transaction)
	insertTxn := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertTxn,
		m.TransactionID,
		m.TenantID,
		m.Amount,
		m.CurrencyCode,
		m.Type,
		m.Description,
		m.PartyType,
		m.PartyID,
		m.ReferenceType,
		m.ReferenceID,
		m.DrawerID,
		m.OccurredAt,
		m.IsDirect,
		m.ReversedBy,
		m.Reverses,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, classifyPgError(err))
	}

	// 2. Link the reversed entry. The guard on reversed_by IS NULL makes a
	// concurrent double reversal lose with ErrConflict instead of silently
	// overwriting the link.
	if rec.MarksReversed != nil {
		link := `
			UPDATE transactions
			SET reversed_by = $1
			WHERE tenant_id = $2 AND transaction_id = $3 AND reversed_by IS NULL;
		`
		tag, err := tx.Exec(ctx, link, m.TransactionID, m.TenantID, *rec.MarksReversed)
		if err != nil {
			return fmt.Errorf("failed to link reversal of %s: %w", *rec.MarksReversed, classifyPgError(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("entry %s: %w", *rec.MarksReversed, apperrors.ErrConflict)
		}
	}

	// 3. Insert the payment leg with a number generated inside the
	// transaction. A racing insert trips the unique constraint, which
	// classifies as transient so the caller retries with a fresh number.
	if rec.Payment != nil {
		number, err := r.nextPaymentNumber(ctx, tx, rec.Payment.TenantID, rec.Payment.OccurredAt.Format("20060102"))
		if err != nil {
			return err
		}
		rec.Payment.PaymentNumber = number

		p := mapping.ToModelPayment(*rec.Payment)
		insertPayment := `
			INSERT INTO payments (payment_id, tenant_id, payment_number, amount, currency_code, payment_method, reference_type, reference_id, cash_drawer_id, occurred_at, notes, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, insertPayment,
			p.PaymentID,
			p.TenantID,
			p.PaymentNumber,
			p.Amount,
			p.CurrencyCode,
			p.Method,
			p.ReferenceType,
			p.ReferenceID,
			p.DrawerID,
			p.OccurredAt,
			p.Notes,
			p.CreatedAt,
			p.CreatedBy,
		)
		if err != nil {
			if classified := classifyPgError(err); errors.Is(classified, apperrors.ErrDuplicate) {
				return fmt.Errorf("payment number %s taken: %w", number, apperrors.ErrTransient)
			}
			return fmt.Errorf("failed to insert payment %s: %w", p.PaymentID, err)
		}
	}

	// 4. Insert statements and sale lines in one batch.
	if len(rec.Statements) > 0 || len(rec.SaleLines) > 0 {
		batch := &pgx.Batch{}
		insertStatement := `
			INSERT INTO party_statements (statement_id, tenant_id, transaction_id, party_type, party_id, amount, currency_code, statement_type, reference_type, reference_id, occurred_at, notes, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`
		for _, st := range rec.Statements {
			s := mapping.ToModelStatement(st)
			batch.Queue(insertStatement,
				s.StatementID, s.TenantID, s.TransactionID, s.PartyType, s.PartyID, s.Amount, s.CurrencyCode,
				s.Kind, s.ReferenceType, s.ReferenceID, s.OccurredAt, s.Notes, s.CreatedAt, s.CreatedBy,
			)
		}
		insertLine := `
			INSERT INTO sale_lines (line_id, tenant_id, transaction_id, variant_id, quantity, line_total, currency_code, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		for _, sl := range rec.SaleLines {
			l := mapping.ToModelSaleLine(sl)
			batch.Queue(insertLine,
				l.LineID, l.TenantID, l.TransactionID, l.VariantID, l.Quantity, l.LineTotal, l.CurrencyCode, l.OccurredAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert statements and sale lines: %w", classifyPgError(err))
		}
	}

	// 5. Move the drawer balance.
	if rec.DrawerDelta != nil {
		d := rec.DrawerDelta
		if err := r.drawerRepo.AdjustBalanceInTx(ctx, tx, m.TenantID, d.DrawerID, d.CurrencyCode, d.Delta); err != nil {
			return err
		}
	}

	// 6. Move the party balance.
	if rec.PartyDelta != nil {
		p := rec.PartyDelta
		if err := r.partyRepo.ApplyDeltaInTx(ctx, tx, m.TenantID, p.Party, p.Delta); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// nextPaymentNumber produces the next PAY-YYYYMMDD-NNNN number for the tenant
// and day. The row lock on the day's highest number serializes generators.
func (r *PgxLedgerRepository) nextPaymentNumber(ctx context.Context, tx pgx.Tx, tenantID, day string) (string, error) {
	prefix := "PAY-" + day + "-"
	query := `
		SELECT payment_number
		FROM payments
		WHERE tenant_id = $1 AND payment_number LIKE $2
		ORDER BY payment_number DESC
		LIMIT 1
		FOR UPDATE;
	`
	var last string
	err := tx.QueryRow(ctx, query, tenantID, prefix+"%").Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to find last payment number: %w", classifyPgError(err))
	}

	seq := 1
	if last != "" {
		suffix := strings.TrimPrefix(last, prefix)
		n, convErr := strconv.Atoi(suffix)
		if convErr != nil {
			return "", fmt.Errorf("malformed payment number %q: %w", last, convErr)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// FindTransactionByID retrieves a ledger entry by its identifier.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND transaction_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, tenantID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves a keyset-paginated page of ledger entries,
// newest first, with optional filters.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, tenantID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1`)
	args := []interface{}{tenantID}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		sb.WriteString(" AND " + strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.Type != nil {
		addArg("transaction_type = ?", string(*filter.Type))
	}
	if filter.DrawerID != nil {
		addArg("cash_drawer_id = ?", *filter.DrawerID)
	}
	if filter.Party != nil {
		addArg("party_type = ?", string(filter.Party.Kind))
		addArg("party_id = ?", filter.Party.ID)
	}
	if filter.From != nil {
		addArg("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		addArg("occurred_at < ?", *filter.To)
	}

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastOccurredAt, lastCreatedAt)
		sb.WriteString(fmt.Sprintf(" AND (occurred_at, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, fetchLimit)
	sb.WriteString(fmt.Sprintf(" ORDER BY occurred_at DESC, created_at DESC LIMIT $%d;", len(args)))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		newToken = &token
	}

	return mapping.ToDomainTransactionSlice(modelTxns), newToken, nil
}

// FindPaymentsByReference retrieves the payments recorded for a business document.
func (r *PgxLedgerRepository) FindPaymentsByReference(ctx context.Context, tenantID string, ref domain.Reference) ([]domain.Payment, error) {
	if ref.ID == nil {
		return []domain.Payment{}, nil
	}
	query := `
		SELECT payment_id, tenant_id, payment_number, amount, currency_code, payment_method, reference_type, reference_id, cash_drawer_id, occurred_at, notes, created_at, created_by
		FROM payments
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, string(ref.Kind), *ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments by reference: %w", err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		var p models.Payment
		err := row.Scan(
			&p.PaymentID,
			&p.TenantID,
			&p.PaymentNumber,
			&p.Amount,
			&p.CurrencyCode,
			&p.Method,
			&p.ReferenceType,
			&p.ReferenceID,
			&p.DrawerID,
			&p.OccurredAt,
			&p.Notes,
			&p.CreatedAt,
			&p.CreatedBy,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}

	payments := make([]domain.Payment, len(modelPayments))
	for i, p := range modelPayments {
		payments[i] = mapping.ToDomainPayment(p)
	}
	return payments, nil
}

// FindLoanStatement retrieves the outstanding loan statement written by a
// ledger entry. Keyed on the transaction so entries sharing one business
// document never pick up each other's loans.
func (r *PgxLedgerRepository) FindLoanStatement(ctx context.Context, tenantID, transactionID string) (*domain.Statement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM party_statements
		WHERE tenant_id = $1 AND transaction_id = $2 AND statement_type = $3
		LIMIT 1;
	`
	var m models.Statement
	err := r.Pool.QueryRow(ctx, query, tenantID, transactionID, string(domain.StatementLoan)).Scan(
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
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan statement: %w", err)
	}
	st := mapping.ToDomainStatement(m)
	return &st, nil
}
