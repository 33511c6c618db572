package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/dto"
	"github.com/easyshop/ledger/internal/middleware"
	"github.com/easyshop/ledger/internal/utils/money"
)

var (
	// ErrAmountNotPositive is returned when an income or expense entry does
	// not carry a strictly positive amount.
	ErrAmountNotPositive = errors.New("entry amount must be positive")
	// ErrAmountZero is returned when a transfer or adjustment carries a zero amount.
	ErrAmountZero = errors.New("entry amount must be non-zero")
	// ErrUnsettledExceedsAmount is returned when the unsettled portion is
	// larger than the entry amount.
	ErrUnsettledExceedsAmount = errors.New("unsettled amount exceeds entry amount")
	// ErrUnsettledNeedsParty is returned when an unsettled portion is given
	// without a party to carry it.
	ErrUnsettledNeedsParty = errors.New("unsettled amount requires a party")
	// ErrAlreadyReversed is returned when reversing an entry twice.
	ErrAlreadyReversed = errors.New("entry is already reversed")
	// ErrReversalOfReversal is returned when reversing a compensating entry.
	ErrReversalOfReversal = errors.New("a reversal entry cannot itself be reversed")
)

const defaultSaveRetries = 3

// recorderService is the single write path into the monetary ledger. Every
// monetary event it records is persisted as one atomic unit: the transaction
// row plus the payment leg, party statements, sale lines and the drawer and
// party balance movements it implies.
type recorderService struct {
	ledgerRepo    portsrepo.LedgerRepositoryWithTx
	drawerRepo    portsrepo.DrawerReader
	currencyRepo  portsrepo.CurrencyReader
	conversionSvc portssvc.ConversionSvc
	saveRetries   int
}

// NewRecorderService creates a new RecorderService. saveRetries bounds how
// often a serialization failure is retried before giving up.
func NewRecorderService(ledgerRepo portsrepo.LedgerRepositoryWithTx, drawerRepo portsrepo.DrawerReader, currencyRepo portsrepo.CurrencyReader, conversionSvc portssvc.ConversionSvc, saveRetries int) portssvc.RecorderSvcFacade {
	if saveRetries <= 0 {
		saveRetries = defaultSaveRetries
	}
	return &recorderService{
		ledgerRepo:    ledgerRepo,
		drawerRepo:    drawerRepo,
		currencyRepo:  currencyRepo,
		conversionSvc: conversionSvc,
		saveRetries:   saveRetries,
	}
}

var _ portssvc.RecorderSvcFacade = (*recorderService)(nil)

func (s *recorderService) validateAmount(txType domain.TransactionType, amount decimal.Decimal) error {
	switch txType {
	case domain.Income, domain.Expense:
		if amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: got %s", ErrAmountNotPositive, amount.String())
		}
	case domain.Transfer, domain.Adjustment:
		if amount.IsZero() {
			return ErrAmountZero
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txType)
	}
	return nil
}

// RecordEntry validates and persists one monetary event.
func (s *recorderService) RecordEntry(ctx context.Context, tenantID string, req dto.RecordEntryRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txType := domain.TransactionType(req.Type)
	if err := s.validateAmount(txType, req.Amount); err != nil {
		return nil, err
	}

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, tenantID, req.CurrencyCode); err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", req.CurrencyCode, err)
	}

	if req.DrawerID != nil {
		if _, err := s.drawerRepo.FindDrawerByID(ctx, tenantID, *req.DrawerID); err != nil {
			return nil, fmt.Errorf("failed to load drawer: %w", err)
		}
	}

	var party *domain.PartyRef
	if req.Party != nil {
		parsed, err := domain.ParsePartyRef(req.Party.Kind, req.Party.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		party = &parsed
	}

	// The unsettled portion stays on the party's account as a loan.
	unsettled := decimal.Zero
	if req.UnsettledAmount != nil {
		unsettled = *req.UnsettledAmount
		if unsettled.IsNegative() {
			return nil, fmt.Errorf("%w: unsettled amount must not be negative", apperrors.ErrValidation)
		}
		if unsettled.GreaterThan(req.Amount.Abs()) {
			return nil, ErrUnsettledExceedsAmount
		}
		if !unsettled.IsZero() && party == nil {
			return nil, ErrUnsettledNeedsParty
		}
	}
	settled := req.Amount.Sub(unsettled)

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	ref := domain.Reference{Kind: domain.RefOther}
	if req.Reference != nil {
		ref = domain.Reference{Kind: domain.ReferenceKind(req.Reference.Kind), ID: req.Reference.ID}
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TenantID:      tenantID,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		Type:          txType,
		Description:   req.Description,
		Party:         party,
		Reference:     ref,
		DrawerID:      req.DrawerID,
		OccurredAt:    occurredAt,
		IsDirect:      req.IsDirect,
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
	}

	rec := portsrepo.EntryRecord{Transaction: txn}

	if req.Payment != nil && !settled.IsZero() {
		rec.Payment = &domain.Payment{
			PaymentID:    uuid.NewString(),
			TenantID:     tenantID,
			Amount:       settled,
			CurrencyCode: req.CurrencyCode,
			Method:       domain.PaymentMethod(req.Payment.Method),
			Reference:    ref,
			DrawerID:     req.DrawerID,
			OccurredAt:   occurredAt,
			CreatedAt:    now,
			CreatedBy:    creatorUserID,
		}
	}

	// Only settled money physically reaches the drawer.
	if req.DrawerID != nil && !settled.IsZero() {
		signed, err := money.SignedAmount(txType, settled)
		if err != nil {
			return nil, err
		}
		rec.DrawerDelta = &portsrepo.DrawerDelta{
			DrawerID:     *req.DrawerID,
			CurrencyCode: req.CurrencyCode,
			Delta:        signed,
		}
	}

	if party != nil {
		if !settled.IsZero() {
			rec.Statements = append(rec.Statements, domain.Statement{
				StatementID:   uuid.NewString(),
				TenantID:      tenantID,
				TransactionID: &txn.TransactionID,
				Party:         *party,
				Amount:        settled,
				CurrencyCode:  req.CurrencyCode,
				Kind:          domain.StatementCash,
				Reference:     ref,
				OccurredAt:    occurredAt,
				Notes:         req.Description,
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
			})
		}
		if !unsettled.IsZero() {
			rec.Statements = append(rec.Statements, domain.Statement{
				StatementID:   uuid.NewString(),
				TenantID:      tenantID,
				TransactionID: &txn.TransactionID,
				Party:         *party,
				Amount:        unsettled,
				CurrencyCode:  req.CurrencyCode,
				Kind:          domain.StatementLoan,
				Reference:     ref,
				OccurredAt:    occurredAt,
				Notes:         req.Description,
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
			})

			// The party balance carries what they owe, in base currency,
			// valued with the rate in force on the event date.
			conv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, unsettled, req.CurrencyCode, occurredAt)
			if err != nil {
				return nil, fmt.Errorf("failed to value unsettled amount: %w", err)
			}
			if conv.Degraded() {
				logger.Warn("Unsettled amount valued with fallback rate",
					slog.String("tenant_id", tenantID),
					slog.String("currency_code", req.CurrencyCode),
					slog.Time("occurred_at", occurredAt),
				)
			}
			rec.PartyDelta = &portsrepo.PartyDelta{Party: *party, Delta: conv.Amount.Neg()}
		}
	}

	for _, line := range req.Lines {
		rec.SaleLines = append(rec.SaleLines, domain.SaleLine{
			LineID:        uuid.NewString(),
			TenantID:      tenantID,
			TransactionID: txn.TransactionID,
			VariantID:     line.VariantID,
			Quantity:      line.Quantity,
			LineTotal:     line.LineTotal,
			CurrencyCode:  req.CurrencyCode,
			OccurredAt:    occurredAt,
		})
	}

	if err := s.saveWithRetry(ctx, &rec); err != nil {
		return nil, err
	}

	logger.Info("Ledger entry recorded",
		slog.String("tenant_id", tenantID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txType)),
	)
	return &rec.Transaction, nil
}

// ReverseEntry records a compensating entry that undoes the monetary effects
// of a prior entry and links the two rows. The original is never modified
// beyond gaining its reversed_by link.
func (s *recorderService) ReverseEntry(ctx context.Context, tenantID, transactionID string, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry for reversal: %w", err)
	}
	if original.ReversedBy != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, transactionID)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: %s", ErrReversalOfReversal, transactionID)
	}

	now := time.Now().UTC()

	// Income reverses as expense and vice versa; transfers and adjustments
	// reverse by negating the amount.
	revType := original.Type
	revAmount := original.Amount
	switch original.Type {
	case domain.Income:
		revType = domain.Expense
	case domain.Expense:
		revType = domain.Income
	case domain.Transfer, domain.Adjustment:
		revAmount = revAmount.Neg()
	}

	originalID := original.TransactionID
	reversal := domain.Transaction{
		TransactionID: uuid.NewString(),
		TenantID:      tenantID,
		Amount:        revAmount,
		CurrencyCode:  original.CurrencyCode,
		Type:          revType,
		Description:   fmt.Sprintf("Reversal of %s", originalID),
		Party:         original.Party,
		Reference:     original.Reference,
		DrawerID:      original.DrawerID,
		OccurredAt:    now,
		IsDirect:      original.IsDirect,
		Reverses:      &originalID,
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
	}

	rec := portsrepo.EntryRecord{
		Transaction:   reversal,
		MarksReversed: &originalID,
	}

	// The drawer only ever received the settled portion; an outstanding loan
	// statement tells us how much never reached it.
	unsettled := decimal.Zero
	loan, err := s.ledgerRepo.FindLoanStatement(ctx, tenantID, original.TransactionID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load loan statement for reversal: %w", err)
	}
	if loan != nil {
		unsettled = loan.Amount
	}
	settled := original.Amount.Sub(unsettled)

	if original.DrawerID != nil && !settled.IsZero() {
		signed, err := money.SignedAmount(original.Type, settled)
		if err != nil {
			return nil, err
		}
		rec.DrawerDelta = &portsrepo.DrawerDelta{
			DrawerID:     *original.DrawerID,
			CurrencyCode: original.CurrencyCode,
			Delta:        signed.Neg(),
		}
	}

	if original.Party != nil {
		rec.Statements = append(rec.Statements, domain.Statement{
			StatementID:   uuid.NewString(),
			TenantID:      tenantID,
			TransactionID: &reversal.TransactionID,
			Party:         *original.Party,
			Amount:        original.Amount.Neg(),
			CurrencyCode:  original.CurrencyCode,
			Kind:          domain.StatementReversal,
			Reference:     original.Reference,
			OccurredAt:    now,
			Notes:         reversal.Description,
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
		})

		if !unsettled.IsZero() {
			// Restore the party balance with the rate of the original event
			// date so the reversal cancels exactly what was applied.
			conv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, unsettled, original.CurrencyCode, original.OccurredAt)
			if err != nil {
				return nil, fmt.Errorf("failed to value unsettled amount for reversal: %w", err)
			}
			rec.PartyDelta = &portsrepo.PartyDelta{Party: *original.Party, Delta: conv.Amount}
		}
	}

	if err := s.saveWithRetry(ctx, &rec); err != nil {
		return nil, err
	}

	logger.Info("Ledger entry reversed",
		slog.String("tenant_id", tenantID),
		slog.String("transaction_id", originalID),
		slog.String("reversal_id", reversal.TransactionID),
	)
	return &rec.Transaction, nil
}

// saveWithRetry persists the record, retrying the whole atomic unit a bounded
// number of times when the database reports a serialization conflict.
func (s *recorderService) saveWithRetry(ctx context.Context, rec *portsrepo.EntryRecord) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	for attempt := 1; attempt <= s.saveRetries; attempt++ {
		lastErr = s.ledgerRepo.SaveEntry(ctx, rec)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, apperrors.ErrTransient) {
			return fmt.Errorf("failed to save ledger entry: %w", lastErr)
		}
		logger.Warn("Serialization conflict saving ledger entry, retrying",
			slog.Int("attempt", attempt),
			slog.String("transaction_id", rec.Transaction.TransactionID),
		)
	}
	return fmt.Errorf("ledger entry save kept conflicting after %d attempts: %w", s.saveRetries, lastErr)
}

func (s *recorderService) GetTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

func (s *recorderService) ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	filter := portsrepo.TransactionFilter{
		DrawerID: params.DrawerID,
		From:     params.From,
		To:       params.To,
	}
	if params.Type != nil {
		t := domain.TransactionType(*params.Type)
		filter.Type = &t
	}
	if params.PartyKind != nil && params.PartyID != nil {
		party, err := domain.ParsePartyRef(*params.PartyKind, *params.PartyID)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.Party = &party
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	txns, next, err := s.ledgerRepo.ListTransactions(ctx, tenantID, filter, limit, token)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	nextToken := ""
	if next != nil {
		nextToken = *next
	}
	return txns, nextToken, nil
}

func (s *recorderService) GetPaymentsByReference(ctx context.Context, tenantID string, ref domain.Reference) ([]domain.Payment, error) {
	payments, err := s.ledgerRepo.FindPaymentsByReference(ctx, tenantID, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by reference: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
