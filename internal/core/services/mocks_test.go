package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/easyshop/ledger/internal/dto"
)

// --- Mock TenantRepository ---

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, tenantID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetBaseCurrency(ctx context.Context, tenantID, currencyCode, updatedBy string) error {
	args := m.Called(ctx, tenantID, currencyCode, updatedBy)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRateAt(ctx context.Context, tenantID, currencyCode string, at time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, currencyCode, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, tenantID, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, tenantID, currencyCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock PriceRepository ---

type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) FindCurrentPrice(ctx context.Context, tenantID, variantID string) (*domain.ProductPrice, error) {
	args := m.Called(ctx, tenantID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) FindPriceAsOf(ctx context.Context, tenantID, variantID string, at time.Time) (*domain.ProductPrice, error) {
	args := m.Called(ctx, tenantID, variantID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) ListPriceHistory(ctx context.Context, tenantID, variantID string) ([]domain.ProductPrice, error) {
	args := m.Called(ctx, tenantID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) ReplaceCurrentPrice(ctx context.Context, newPrice domain.ProductPrice) error {
	args := m.Called(ctx, newPrice)
	return args.Error(0)
}

// --- Mock DrawerRepository ---

type MockDrawerRepository struct {
	mock.Mock
}

func (m *MockDrawerRepository) FindDrawerByID(ctx context.Context, tenantID, drawerID string) (*domain.CashDrawer, error) {
	args := m.Called(ctx, tenantID, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashDrawer), args.Error(1)
}

func (m *MockDrawerRepository) ListDrawers(ctx context.Context, tenantID string) ([]domain.CashDrawer, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashDrawer), args.Error(1)
}

func (m *MockDrawerRepository) FindBalance(ctx context.Context, tenantID, drawerID, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, drawerID, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDrawerRepository) ListBalances(ctx context.Context, tenantID, drawerID string) ([]domain.CashDrawerBalance, error) {
	args := m.Called(ctx, tenantID, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashDrawerBalance), args.Error(1)
}

func (m *MockDrawerRepository) SaveDrawer(ctx context.Context, drawer domain.CashDrawer) error {
	args := m.Called(ctx, drawer)
	return args.Error(0)
}

func (m *MockDrawerRepository) AdjustBalance(ctx context.Context, tenantID, drawerID, currencyCode string, delta decimal.Decimal) error {
	args := m.Called(ctx, tenantID, drawerID, currencyCode, delta)
	return args.Error(0)
}

func (m *MockDrawerRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID, drawerID, currencyCode string, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, tenantID, drawerID, currencyCode, delta)
	return args.Error(0)
}

// --- Mock PartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindBalance(ctx context.Context, tenantID string, party domain.PartyRef) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, party)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPartyRepository) ListStatements(ctx context.Context, tenantID string, party domain.PartyRef, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	args := m.Called(ctx, tenantID, party, limit, nextToken)
	var statements []domain.Statement
	if args.Get(0) != nil {
		statements = args.Get(0).([]domain.Statement)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return statements, next, args.Error(2)
}

func (m *MockPartyRepository) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, tenantID string, party domain.PartyRef, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, tenantID, party, delta)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, tenantID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockLedgerRepository) FindPaymentsByReference(ctx context.Context, tenantID string, ref domain.Reference) ([]domain.Payment, error) {
	args := m.Called(ctx, tenantID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockLedgerRepository) FindLoanStatement(ctx context.Context, tenantID, transactionID string) (*domain.Statement, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, rec *portsrepo.EntryRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListSaleLines(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SaleLine, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleLine), args.Error(1)
}

func (m *MockReportingRepository) ListExpenseEvents(ctx context.Context, tenantID string, from, to time.Time) ([]domain.ExpenseEvent, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseEvent), args.Error(1)
}

func (m *MockReportingRepository) ListRevenueEvents(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenueEvent, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueEvent), args.Error(1)
}

func (m *MockReportingRepository) ReconcileDrawer(ctx context.Context, tenantID, drawerID string) ([]domain.DrawerReconciliation, error) {
	args := m.Called(ctx, tenantID, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DrawerReconciliation), args.Error(1)
}

// --- Mock RateTimelineService ---

type MockRateTimelineService struct {
	mock.Mock
}

func (m *MockRateTimelineService) RateAt(ctx context.Context, tenantID, currencyCode string, at time.Time) (*domain.RateLookup, error) {
	args := m.Called(ctx, tenantID, currencyCode, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateLookup), args.Error(1)
}

func (m *MockRateTimelineService) CurrentRate(ctx context.Context, tenantID, currencyCode string) (*domain.RateLookup, error) {
	args := m.Called(ctx, tenantID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateLookup), args.Error(1)
}

func (m *MockRateTimelineService) ListRates(ctx context.Context, tenantID, currencyCode string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, tenantID, currencyCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock ConversionService ---

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, tenantID string, amount decimal.Decimal, fromCode, toCode string, at time.Time) (*domain.Conversion, error) {
	args := m.Called(ctx, tenantID, amount, fromCode, toCode, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockConversionService) ConvertToBase(ctx context.Context, tenantID string, amount decimal.Decimal, fromCode string, at time.Time) (*domain.Conversion, error) {
	args := m.Called(ctx, tenantID, amount, fromCode, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

// --- Mock RecorderService (writer side) ---

type MockRecorderService struct {
	mock.Mock
}

func (m *MockRecorderService) RecordEntry(ctx context.Context, tenantID string, req dto.RecordEntryRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockRecorderService) ReverseEntry(ctx context.Context, tenantID, transactionID string, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock PriceService (reader side) ---

type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) GetCurrentPrice(ctx context.Context, tenantID, variantID string) (*domain.ProductPrice, error) {
	args := m.Called(ctx, tenantID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}

func (m *MockPriceService) PriceAsOf(ctx context.Context, tenantID, variantID string, at time.Time) (*domain.ProductPrice, error) {
	args := m.Called(ctx, tenantID, variantID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPrice), args.Error(1)
}

func (m *MockPriceService) ListPriceHistory(ctx context.Context, tenantID, variantID string, limit int) ([]domain.ProductPrice, error) {
	args := m.Called(ctx, tenantID, variantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductPrice), args.Error(1)
}
