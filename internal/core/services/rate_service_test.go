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
	"github.com/easyshop/ledger/internal/dto"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.RateTimelineSvcFacade
	tenantID         string
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewRateService(suite.mockRateRepo, suite.mockCurrencyRepo)
	suite.tenantID = uuid.NewString()
}

func (suite *RateServiceTestSuite) TestRecordRate_Success() {
	ctx := context.Background()
	effectiveAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.RecordRateRequest{
		CurrencyCode: "EUR",
		Rate:         decimal.NewFromFloat(0.92),
		EffectiveAt:  effectiveAt,
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "EUR").
		Return(&domain.Currency{TenantID: suite.tenantID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockRateRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.TenantID == suite.tenantID &&
			r.CurrencyCode == "EUR" &&
			r.Rate.Equal(decimal.NewFromFloat(0.92)) &&
			r.EffectiveAt.Equal(effectiveAt)
	})).Return(nil).Once()

	rate, err := suite.service.RecordRate(ctx, suite.tenantID, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.RateID)
	suite.Equal("user-1", rate.CreatedBy)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRecordRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	req := dto.RecordRateRequest{
		CurrencyCode: "EUR",
		Rate:         decimal.Zero,
		EffectiveAt:  time.Now().UTC(),
	}

	rate, err := suite.service.RecordRate(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRateNotPositive)
	suite.Nil(rate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRecordRate_UnknownCurrency() {
	ctx := context.Background()
	req := dto.RecordRateRequest{
		CurrencyCode: "XXX",
		Rate:         decimal.NewFromInt(2),
		EffectiveAt:  time.Now().UTC(),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, suite.tenantID, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.RecordRate(ctx, suite.tenantID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(rate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRateAt_EffectiveRateFound() {
	ctx := context.Background()
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	stored := &domain.ExchangeRate{
		RateID:       uuid.NewString(),
		CurrencyCode: "EUR",
		Rate:         decimal.NewFromFloat(0.9),
		EffectiveAt:  at.AddDate(0, 0, -3),
	}

	suite.mockRateRepo.On("FindRateAt", ctx, suite.tenantID, "EUR", at).Return(stored, nil).Once()

	lookup, err := suite.service.RateAt(ctx, suite.tenantID, "EUR", at)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceEffective, lookup.Source)
	suite.True(lookup.Rate.Equal(decimal.NewFromFloat(0.9)))
	suite.False(lookup.Degraded())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestRateAt_FallsBackToLatest() {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	latest := &domain.ExchangeRate{
		RateID:       uuid.NewString(),
		CurrencyCode: "EUR",
		Rate:         decimal.NewFromFloat(0.95),
		EffectiveAt:  at.AddDate(0, 2, 0),
	}

	suite.mockRateRepo.On("FindRateAt", ctx, suite.tenantID, "EUR", at).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, suite.tenantID, "EUR").Return(latest, nil).Once()

	lookup, err := suite.service.RateAt(ctx, suite.tenantID, "EUR", at)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceLatest, lookup.Source)
	suite.True(lookup.Rate.Equal(decimal.NewFromFloat(0.95)))
	suite.True(lookup.Degraded())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRateAt_FallsBackToUnity() {
	ctx := context.Background()
	at := time.Now().UTC()

	suite.mockRateRepo.On("FindRateAt", ctx, suite.tenantID, "VND", at).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, suite.tenantID, "VND").Return(nil, apperrors.ErrNotFound).Once()

	lookup, err := suite.service.RateAt(ctx, suite.tenantID, "VND", at)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceUnity, lookup.Source)
	suite.True(lookup.Rate.Equal(decimal.NewFromInt(1)))
	suite.True(lookup.Degraded())
}

// timelineRateRepo serves lookups from a fixed in-memory timeline with the
// same selection the SQL uses: greatest effective_at <= at, last write wins.
type timelineRateRepo struct {
	rates []domain.ExchangeRate
}

func (r *timelineRateRepo) FindRateAt(_ context.Context, _, currencyCode string, at time.Time) (*domain.ExchangeRate, error) {
	var best *domain.ExchangeRate
	for i := range r.rates {
		p := &r.rates[i]
		if p.CurrencyCode != currencyCode || p.EffectiveAt.After(at) {
			continue
		}
		if best == nil || !p.EffectiveAt.Before(best.EffectiveAt) {
			best = p
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	return best, nil
}

func (r *timelineRateRepo) FindLatestRate(_ context.Context, _, currencyCode string) (*domain.ExchangeRate, error) {
	var best *domain.ExchangeRate
	for i := range r.rates {
		p := &r.rates[i]
		if p.CurrencyCode != currencyCode {
			continue
		}
		if best == nil || !p.EffectiveAt.Before(best.EffectiveAt) {
			best = p
		}
	}
	if best == nil {
		return nil, apperrors.ErrNotFound
	}
	return best, nil
}

func (r *timelineRateRepo) ListRates(_ context.Context, _, currencyCode string) ([]domain.ExchangeRate, error) {
	out := make([]domain.ExchangeRate, 0, len(r.rates))
	for _, p := range r.rates {
		if p.CurrencyCode == currencyCode {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *timelineRateRepo) SaveRate(_ context.Context, rate domain.ExchangeRate) error {
	r.rates = append(r.rates, rate)
	return nil
}

func (suite *RateServiceTestSuite) TestRateAt_TimelineResolvesConsistently() {
	ctx := context.Background()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mar1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	jun1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &timelineRateRepo{rates: []domain.ExchangeRate{
		{RateID: "r1", CurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.8), EffectiveAt: jan1},
		{RateID: "r2", CurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.9), EffectiveAt: mar1},
		{RateID: "r3", CurrencyCode: "EUR", Rate: decimal.NewFromInt(1), EffectiveAt: jun1},
	}}
	svc := services.NewRateService(repo, suite.mockCurrencyRepo)

	// Before the first point only the degraded latest-rate fallback applies.
	early, err := svc.RateAt(ctx, suite.tenantID, "EUR", jan1.AddDate(0, -1, 0))
	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceLatest, early.Source)
	suite.True(early.Degraded())

	// A new point takes effect exactly at its instant, not a second sooner.
	before, err := svc.RateAt(ctx, suite.tenantID, "EUR", mar1.Add(-time.Second))
	suite.Require().NoError(err)
	suite.True(before.Rate.Equal(decimal.NewFromFloat(0.8)), "got %s", before.Rate)
	onset, err := svc.RateAt(ctx, suite.tenantID, "EUR", mar1)
	suite.Require().NoError(err)
	suite.True(onset.Rate.Equal(decimal.NewFromFloat(0.9)), "got %s", onset.Rate)

	// This timeline only ever raises the rate, so sweeping forward must
	// never resolve to a smaller one.
	prev := decimal.Zero
	for day := jan1; !day.After(jun1.AddDate(0, 1, 0)); day = day.AddDate(0, 0, 7) {
		lookup, err := svc.RateAt(ctx, suite.tenantID, "EUR", day)
		suite.Require().NoError(err)
		suite.Equal(domain.RateSourceEffective, lookup.Source)
		suite.True(lookup.Rate.GreaterThanOrEqual(prev), "rate went back at %s", day)
		prev = lookup.Rate
	}
	suite.True(prev.Equal(decimal.NewFromInt(1)))
}

func (suite *RateServiceTestSuite) TestRateAt_RepositoryErrorPropagates() {
	ctx := context.Background()
	at := time.Now().UTC()

	suite.mockRateRepo.On("FindRateAt", ctx, suite.tenantID, "EUR", at).
		Return(nil, apperrors.ErrTransient).Once()

	lookup, err := suite.service.RateAt(ctx, suite.tenantID, "EUR", at)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTransient)
	suite.Nil(lookup)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestListRates_AppliesLimit() {
	ctx := context.Background()
	stored := []domain.ExchangeRate{
		{RateID: "r3", Rate: decimal.NewFromFloat(0.93)},
		{RateID: "r2", Rate: decimal.NewFromFloat(0.92)},
		{RateID: "r1", Rate: decimal.NewFromFloat(0.91)},
	}

	suite.mockRateRepo.On("ListRates", ctx, suite.tenantID, "EUR").Return(stored, nil).Once()

	rates, err := suite.service.ListRates(ctx, suite.tenantID, "EUR", 2)

	suite.Require().NoError(err)
	suite.Len(rates, 2)
	suite.Equal("r3", rates[0].RateID)
}

func (suite *RateServiceTestSuite) TestListRates_EmptyTimeline() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListRates", ctx, suite.tenantID, "EUR").Return(nil, nil).Once()

	rates, err := suite.service.ListRates(ctx, suite.tenantID, "EUR", 10)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
