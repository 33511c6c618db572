package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
)

type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo    *MockPartyRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.PartySvcFacade
	tenantID         string
	party            domain.PartyRef
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo, suite.mockCurrencyRepo)
	suite.tenantID = uuid.NewString()
	suite.party = domain.PartyRef{Kind: domain.PartyCustomer, ID: "cust-7"}
}

func (suite *PartyServiceTestSuite) TestGetBalance_DenominatedInBase() {
	ctx := context.Background()

	suite.mockPartyRepo.On("FindBalance", ctx, suite.tenantID, suite.party).
		Return(decimal.NewFromInt(-40), nil).Once()
	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).
		Return(&domain.Currency{CurrencyCode: "USD", IsBase: true}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.tenantID, suite.party)

	suite.Require().NoError(err)
	suite.True(balance.Balance.Equal(decimal.NewFromInt(-40)))
	suite.Equal("USD", balance.CurrencyCode)
	suite.Equal(suite.party, balance.Party)
}

func (suite *PartyServiceTestSuite) TestGetBalance_NoBaseCurrencyStillAnswers() {
	ctx := context.Background()

	suite.mockPartyRepo.On("FindBalance", ctx, suite.tenantID, suite.party).
		Return(decimal.Zero, nil).Once()
	suite.mockCurrencyRepo.On("FindBaseCurrency", ctx, suite.tenantID).
		Return(nil, apperrors.ErrNoBaseCurrency).Once()

	balance, err := suite.service.GetBalance(ctx, suite.tenantID, suite.party)

	suite.Require().NoError(err)
	suite.True(balance.Balance.IsZero())
	suite.Empty(balance.CurrencyCode)
}

func (suite *PartyServiceTestSuite) TestListStatements_PaginationToken() {
	ctx := context.Background()
	next := "tok-2"
	statements := []domain.Statement{
		{StatementID: uuid.NewString(), Kind: domain.StatementLoan, Amount: decimal.NewFromInt(40)},
	}

	suite.mockPartyRepo.On("ListStatements", ctx, suite.tenantID, suite.party, 10, (*string)(nil)).
		Return(statements, &next, nil).Once()

	out, nextToken, err := suite.service.ListStatements(ctx, suite.tenantID, suite.party, 10, "")

	suite.Require().NoError(err)
	suite.Len(out, 1)
	suite.Equal("tok-2", nextToken)
}

func (suite *PartyServiceTestSuite) TestListStatements_DefaultsLimit() {
	ctx := context.Background()
	token := "tok-1"

	suite.mockPartyRepo.On("ListStatements", ctx, suite.tenantID, suite.party, 50, &token).
		Return([]domain.Statement{}, nil, nil).Once()

	out, nextToken, err := suite.service.ListStatements(ctx, suite.tenantID, suite.party, 0, "tok-1")

	suite.Require().NoError(err)
	suite.Empty(out)
	suite.Empty(nextToken)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func TestPartyService(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
