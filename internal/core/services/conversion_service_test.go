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
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRateSvc      *MockRateTimelineService
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ConversionSvc
	tenantID         string
	baseCurrency     *domain.Currency
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRateSvc = new(MockRateTimelineService)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewConversionService(suite.mockRateSvc, suite.mockCurrencyRepo)
	suite.tenantID = uuid.NewString()
	suite.baseCurrency = &domain.Currency{
		TenantID:      suite.tenantID,
		CurrencyCode:  "USD",
		DecimalPlaces: 2,
		IsBase:        true,
	}
}

func (suite *ConversionServiceTestSuite) TestConvertToBase_BridgesThroughBase() {
	ctx := context.Background()
	at := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.9), Source: domain.RateSourceEffective}, nil).Once()

	conv, err := suite.service.ConvertToBase(ctx, suite.tenantID, decimal.NewFromInt(100), "EUR", at)

	suite.Require().NoError(err)
	// 100 / 0.9 rounded to the base currency's two places
	suite.True(conv.Amount.Equal(decimal.NewFromFloat(111.11)), "got %s", conv.Amount)
	suite.False(conv.Degraded())
}

func (suite *ConversionServiceTestSuite) TestConvertToBase_BaseCurrencyShortCircuits() {
	ctx := context.Background()
	at := time.Now().UTC()

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil).Once()

	conv, err := suite.service.ConvertToBase(ctx, suite.tenantID, decimal.NewFromFloat(42.5), "USD", at)

	suite.Require().NoError(err)
	suite.True(conv.Amount.Equal(decimal.NewFromFloat(42.5)))
	suite.False(conv.Degraded())
	suite.mockRateSvc.AssertNotCalled(suite.T(), "RateAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvertToBase_DegradedRateFlagged() {
	ctx := context.Background()
	at := time.Now().UTC()

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.95), Source: domain.RateSourceLatest}, nil).Once()

	conv, err := suite.service.ConvertToBase(ctx, suite.tenantID, decimal.NewFromInt(19), "EUR", at)

	suite.Require().NoError(err)
	suite.True(conv.Degraded())
	suite.Equal(domain.RateSourceLatest, conv.FromRate.Source)
}

func (suite *ConversionServiceTestSuite) TestConvertToBase_NoBaseCurrency() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).
		Return(nil, apperrors.ErrNoBaseCurrency).Once()

	conv, err := suite.service.ConvertToBase(ctx, suite.tenantID, decimal.NewFromInt(10), "EUR", time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoBaseCurrency)
	suite.Nil(conv)
}

func (suite *ConversionServiceTestSuite) TestConvert_SameCurrencyIsIdentity() {
	ctx := context.Background()

	conv, err := suite.service.Convert(ctx, suite.tenantID, decimal.NewFromFloat(7.25), "EUR", "EUR", time.Now().UTC())

	suite.Require().NoError(err)
	suite.True(conv.Amount.Equal(decimal.NewFromFloat(7.25)))
	suite.False(conv.Degraded())
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindBaseCurrency", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_CrossCurrencyBridgesThroughBase() {
	ctx := context.Background()
	at := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.8), Source: domain.RateSourceEffective}, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "GBP", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.5), Source: domain.RateSourceEffective}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "GBP").
		Return(&domain.Currency{CurrencyCode: "GBP", DecimalPlaces: 2}, nil).Once()

	conv, err := suite.service.Convert(ctx, suite.tenantID, decimal.NewFromInt(100), "EUR", "GBP", at)

	suite.Require().NoError(err)
	// 100 EUR -> 125 base -> 62.50 GBP
	suite.True(conv.Amount.Equal(decimal.NewFromFloat(62.5)), "got %s", conv.Amount)
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_RoundTripStaysWithinRounding() {
	ctx := context.Background()
	at := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil)
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.8), Source: domain.RateSourceEffective}, nil)
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "GBP", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.5), Source: domain.RateSourceEffective}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", DecimalPlaces: 2}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "GBP").
		Return(&domain.Currency{CurrencyCode: "GBP", DecimalPlaces: 2}, nil)

	// Each leg rounds to two places, so the round trip may drift by at most
	// one cent per leg.
	tolerance := decimal.NewFromFloat(0.02)
	for _, amount := range []decimal.Decimal{
		decimal.NewFromFloat(0.01),
		decimal.NewFromInt(10),
		decimal.NewFromFloat(123.45),
		decimal.NewFromFloat(999.99),
	} {
		there, err := suite.service.Convert(ctx, suite.tenantID, amount, "EUR", "GBP", at)
		suite.Require().NoError(err)
		back, err := suite.service.Convert(ctx, suite.tenantID, there.Amount, "GBP", "EUR", at)
		suite.Require().NoError(err)

		drift := back.Amount.Sub(amount).Abs()
		suite.True(drift.LessThanOrEqual(tolerance), "%s came back as %s", amount, back.Amount)
	}
}

func (suite *ConversionServiceTestSuite) TestConvert_FromBaseSkipsFromRateLookup() {
	ctx := context.Background()
	at := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromFloat(0.9), Source: domain.RateSourceEffective}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", DecimalPlaces: 2}, nil).Once()

	conv, err := suite.service.Convert(ctx, suite.tenantID, decimal.NewFromInt(10), "USD", "EUR", at)

	suite.Require().NoError(err)
	suite.True(conv.Amount.Equal(decimal.NewFromInt(9)), "got %s", conv.Amount)
	suite.True(conv.FromRate.Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ConversionServiceTestSuite) TestConvert_UnregisteredTargetDefaultsToTwoPlaces() {
	ctx := context.Background()
	at := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).Return(suite.baseCurrency, nil).Once()
	suite.mockRateSvc.On("RateAt", ctx, suite.tenantID, "EUR", at).
		Return(&domain.RateLookup{Rate: decimal.NewFromInt(3), Source: domain.RateSourceEffective}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "EUR").
		Return(nil, apperrors.ErrNotFound).Once()

	conv, err := suite.service.Convert(ctx, suite.tenantID, decimal.NewFromInt(10), "USD", "EUR", at)

	suite.Require().NoError(err)
	suite.True(conv.Amount.Equal(decimal.NewFromInt(30)), "got %s", conv.Amount)
}

func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
