package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
	"github.com/easyshop/ledger/internal/dto"
)

type RecorderServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockDrawerRepo   *MockDrawerRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockConversion   *MockConversionService
	service          portssvc.RecorderSvcFacade
	tenantID         string
	drawerID         string
}

func (suite *RecorderServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockDrawerRepo = new(MockDrawerRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockConversion = new(MockConversionService)
	suite.service = services.NewRecorderService(suite.mockLedgerRepo, suite.mockDrawerRepo, suite.mockCurrencyRepo, suite.mockConversion, 3)
	suite.tenantID = uuid.NewString()
	suite.drawerID = uuid.NewString()
}

func (suite *RecorderServiceTestSuite) expectCurrency(ctx context.Context, code string) {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, code).
		Return(&domain.Currency{TenantID: suite.tenantID, CurrencyCode: code}, nil).Once()
}

func (suite *RecorderServiceTestSuite) expectDrawer(ctx context.Context) {
	suite.mockDrawerRepo.On("FindDrawerByID", ctx, suite.tenantID, suite.drawerID).
		Return(&domain.CashDrawer{TenantID: suite.tenantID, DrawerID: suite.drawerID}, nil).Once()
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_SaleWithUnsettledPortion() {
	ctx := context.Background()
	occurredAt := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	unsettled := decimal.NewFromInt(40)
	saleID := uuid.NewString()
	req := dto.RecordEntryRequest{
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    "USD",
		Type:            string(domain.Income),
		Description:     "walk-in sale",
		Party:           &dto.PartyRefRequest{Kind: "CUSTOMER", ID: "cust-7"},
		Reference:       &dto.ReferenceRequest{Kind: "SALE", ID: &saleID},
		DrawerID:        &suite.drawerID,
		Payment:         &dto.PaymentRequest{Method: "CASH"},
		UnsettledAmount: &unsettled,
		OccurredAt:      &occurredAt,
	}

	suite.expectCurrency(ctx, "USD")
	suite.expectDrawer(ctx)
	suite.mockConversion.On("ConvertToBase", ctx, suite.tenantID, unsettled, "USD", occurredAt).
		Return(&domain.Conversion{
			Amount:   decimal.NewFromInt(40),
			FromRate: domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective},
			ToRate:   domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective},
		}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		if rec.Payment == nil || !rec.Payment.Amount.Equal(decimal.NewFromInt(60)) {
			return false
		}
		if rec.DrawerDelta == nil || !rec.DrawerDelta.Delta.Equal(decimal.NewFromInt(60)) {
			return false
		}
		if len(rec.Statements) != 2 {
			return false
		}
		cash, loan := rec.Statements[0], rec.Statements[1]
		if cash.Kind != domain.StatementCash || !cash.Amount.Equal(decimal.NewFromInt(60)) {
			return false
		}
		if loan.Kind != domain.StatementLoan || !loan.Amount.Equal(decimal.NewFromInt(40)) {
			return false
		}
		return rec.PartyDelta != nil && rec.PartyDelta.Delta.Equal(decimal.NewFromInt(-40))
	})).Return(nil).Once()

	txn, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Income, txn.Type)
	suite.Equal(occurredAt, txn.OccurredAt)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_FullySettledSkipsLoan() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(50),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
		Party:        &dto.PartyRefRequest{Kind: "CUSTOMER", ID: "cust-7"},
		DrawerID:     &suite.drawerID,
		Payment:      &dto.PaymentRequest{Method: "CARD"},
	}

	suite.expectCurrency(ctx, "USD")
	suite.expectDrawer(ctx)
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		return len(rec.Statements) == 1 &&
			rec.Statements[0].Kind == domain.StatementCash &&
			rec.PartyDelta == nil &&
			rec.DrawerDelta != nil && rec.DrawerDelta.Delta.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
	suite.mockConversion.AssertNotCalled(suite.T(), "ConvertToBase", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_ExpenseRemovesFromDrawer() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(25),
		CurrencyCode: "USD",
		Type:         string(domain.Expense),
		DrawerID:     &suite.drawerID,
	}

	suite.expectCurrency(ctx, "USD")
	suite.expectDrawer(ctx)
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		return rec.DrawerDelta != nil && rec.DrawerDelta.Delta.Equal(decimal.NewFromInt(-25))
	})).Return(nil).Once()

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_SaleLinesCarried() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(30),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
		Lines: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: decimal.NewFromInt(2), LineTotal: decimal.NewFromInt(20)},
			{VariantID: "var-2", Quantity: decimal.NewFromInt(1), LineTotal: decimal.NewFromInt(10)},
		},
	}

	suite.expectCurrency(ctx, "USD")
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		return len(rec.SaleLines) == 2 &&
			rec.SaleLines[0].VariantID == "var-1" &&
			rec.SaleLines[1].VariantID == "var-2" &&
			rec.SaleLines[0].TransactionID == rec.Transaction.TransactionID
	})).Return(nil).Once()

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_IncomeMustBePositive() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(-5),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
	}

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_AdjustmentMustBeNonZero() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.Zero,
		CurrencyCode: "USD",
		Type:         string(domain.Adjustment),
	}

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountZero)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_NegativeAdjustmentAllowed() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(-15),
		CurrencyCode: "USD",
		Type:         string(domain.Adjustment),
		DrawerID:     &suite.drawerID,
		IsDirect:     true,
	}

	suite.expectCurrency(ctx, "USD")
	suite.expectDrawer(ctx)
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		return rec.DrawerDelta != nil && rec.DrawerDelta.Delta.Equal(decimal.NewFromInt(-15))
	})).Return(nil).Once()

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_UnsettledExceedsAmount() {
	ctx := context.Background()
	unsettled := decimal.NewFromInt(200)
	req := dto.RecordEntryRequest{
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    "USD",
		Type:            string(domain.Income),
		Party:           &dto.PartyRefRequest{Kind: "CUSTOMER", ID: "cust-7"},
		UnsettledAmount: &unsettled,
	}

	suite.expectCurrency(ctx, "USD")

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnsettledExceedsAmount)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_UnsettledRequiresParty() {
	ctx := context.Background()
	unsettled := decimal.NewFromInt(10)
	req := dto.RecordEntryRequest{
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    "USD",
		Type:            string(domain.Income),
		UnsettledAmount: &unsettled,
	}

	suite.expectCurrency(ctx, "USD")

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnsettledNeedsParty)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_BadPartyKindRejected() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
		Party:        &dto.PartyRefRequest{Kind: "ALIEN", ID: "x"},
	}

	suite.expectCurrency(ctx, "USD")

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_RetriesTransientConflicts() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
	}

	suite.expectCurrency(ctx, "USD")
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.Anything).Return(apperrors.ErrTransient).Twice()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
	suite.NotNil(txn)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveEntry", 3)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_GivesUpAfterRetriesExhausted() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
	}

	suite.expectCurrency(ctx, "USD")
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.Anything).Return(apperrors.ErrTransient).Times(3)

	txn, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTransient)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveEntry", 3)
}

func (suite *RecorderServiceTestSuite) TestRecordEntry_NonTransientFailureNotRetried() {
	ctx := context.Background()
	req := dto.RecordEntryRequest{
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
		Type:         string(domain.Income),
	}

	suite.expectCurrency(ctx, "USD")
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.RecordEntry(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SaveEntry", 1)
}

func (suite *RecorderServiceTestSuite) originalSale(occurredAt time.Time) *domain.Transaction {
	saleID := uuid.NewString()
	party := domain.PartyRef{Kind: domain.PartyCustomer, ID: "cust-7"}
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		TenantID:      suite.tenantID,
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "USD",
		Type:          domain.Income,
		Party:         &party,
		Reference:     domain.Reference{Kind: domain.RefSale, ID: &saleID},
		DrawerID:      &suite.drawerID,
		OccurredAt:    occurredAt,
		CreatedBy:     "user-1",
	}
}

func (suite *RecorderServiceTestSuite) TestReverseEntry_UndoesSaleWithLoan() {
	ctx := context.Background()
	occurredAt := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	original := suite.originalSale(occurredAt)
	loan := &domain.Statement{
		StatementID: uuid.NewString(),
		Amount:      decimal.NewFromInt(40),
		Kind:        domain.StatementLoan,
	}

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, suite.tenantID, original.TransactionID).
		Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindLoanStatement", ctx, suite.tenantID, original.TransactionID).
		Return(loan, nil).Once()
	// The restore must be valued at the original event date, not at reversal time.
	suite.mockConversion.On("ConvertToBase", ctx, suite.tenantID, decimal.NewFromInt(40), "USD", occurredAt).
		Return(&domain.Conversion{
			Amount:   decimal.NewFromInt(40),
			FromRate: domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective},
			ToRate:   domain.RateLookup{Rate: decimal.NewFromInt(1), Source: domain.RateSourceEffective},
		}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		if rec.Transaction.Type != domain.Expense {
			return false
		}
		if rec.MarksReversed == nil || *rec.MarksReversed != original.TransactionID {
			return false
		}
		if rec.DrawerDelta == nil || !rec.DrawerDelta.Delta.Equal(decimal.NewFromInt(-60)) {
			return false
		}
		if len(rec.Statements) != 1 || rec.Statements[0].Kind != domain.StatementReversal {
			return false
		}
		return rec.PartyDelta != nil && rec.PartyDelta.Delta.Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.TransactionID, "user-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Require().NotNil(reversal.Reverses)
	suite.Equal(original.TransactionID, *reversal.Reverses)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *RecorderServiceTestSuite) TestReverseEntry_AdjustmentNegatesAmount() {
	ctx := context.Background()
	original := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TenantID:      suite.tenantID,
		Amount:        decimal.NewFromInt(15),
		CurrencyCode:  "USD",
		Type:          domain.Adjustment,
		Reference:     domain.Reference{Kind: domain.RefAdjustment},
		OccurredAt:    time.Now().UTC(),
	}

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, suite.tenantID, original.TransactionID).
		Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindLoanStatement", ctx, suite.tenantID, original.TransactionID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(rec *portsrepo.EntryRecord) bool {
		return rec.Transaction.Type == domain.Adjustment &&
			rec.Transaction.Amount.Equal(decimal.NewFromInt(-15))
	})).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.TransactionID, "user-2")

	suite.Require().NoError(err)
	suite.True(reversal.Amount.Equal(decimal.NewFromInt(-15)))
}

func (suite *RecorderServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	reversedBy := uuid.NewString()
	original := suite.originalSale(time.Now().UTC())
	original.ReversedBy = &reversedBy

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, suite.tenantID, original.TransactionID).
		Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.TransactionID, "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestReverseEntry_ReversalCannotBeReversed() {
	ctx := context.Background()
	reverses := uuid.NewString()
	original := suite.originalSale(time.Now().UTC())
	original.Reverses = &reverses

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, suite.tenantID, original.TransactionID).
		Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.TransactionID, "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReversalOfReversal)
}

func (suite *RecorderServiceTestSuite) TestReverseEntry_NotFound() {
	ctx := context.Background()
	missing := uuid.NewString()

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, suite.tenantID, missing).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, missing, "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RecorderServiceTestSuite) TestListTransactions_TranslatesFilter() {
	ctx := context.Background()
	txType := "INCOME"
	partyKind := "CUSTOMER"
	partyID := "cust-7"
	params := dto.ListTransactionsParams{
		Type:      &txType,
		PartyKind: &partyKind,
		PartyID:   &partyID,
	}

	suite.mockLedgerRepo.On("ListTransactions", ctx, suite.tenantID, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.Type != nil && *f.Type == domain.Income &&
			f.Party != nil && f.Party.ID == "cust-7" && f.Party.Kind == domain.PartyCustomer
	}), 50, (*string)(nil)).Return([]domain.Transaction{}, nil, nil).Once()

	txns, next, err := suite.service.ListTransactions(ctx, suite.tenantID, params)

	suite.Require().NoError(err)
	suite.Empty(txns)
	suite.Empty(next)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestRecorderService(t *testing.T) {
	suite.Run(t, new(RecorderServiceTestSuite))
}
