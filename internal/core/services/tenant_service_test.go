package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/core/services"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	service        portssvc.TenantSvcFacade
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.service = services.NewTenantService(suite.mockTenantRepo)
}

func (suite *TenantServiceTestSuite) TestCreateTenant_Success() {
	ctx := context.Background()

	suite.mockTenantRepo.On("SaveTenant", ctx, mock.MatchedBy(func(t domain.Tenant) bool {
		return t.Name == "Corner Shop" && t.IsActive && t.TenantID != ""
	})).Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, "Corner Shop", "admin-1")

	suite.Require().NoError(err)
	suite.Equal("admin-1", tenant.CreatedBy)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestCreateTenant_EmptyNameRejected() {
	ctx := context.Background()

	tenant, err := suite.service.CreateTenant(ctx, "", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(tenant)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "SaveTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestDeactivateTenant_MarksInactive() {
	ctx := context.Background()
	tenantID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, tenantID).
		Return(&domain.Tenant{TenantID: tenantID, Name: "Corner Shop", IsActive: true}, nil).Once()
	suite.mockTenantRepo.On("UpdateTenant", ctx, mock.MatchedBy(func(t domain.Tenant) bool {
		return t.TenantID == tenantID && !t.IsActive && t.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	err := suite.service.DeactivateTenant(ctx, tenantID, "admin-1")

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestDeactivateTenant_AlreadyInactiveIsNoOp() {
	ctx := context.Background()
	tenantID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, tenantID).
		Return(&domain.Tenant{TenantID: tenantID, IsActive: false}, nil).Once()

	err := suite.service.DeactivateTenant(ctx, tenantID, "admin-1")

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "UpdateTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestGetTenantByID_NotFound() {
	ctx := context.Background()
	tenantID := uuid.NewString()

	suite.mockTenantRepo.On("FindTenantByID", ctx, tenantID).Return(nil, apperrors.ErrNotFound).Once()

	tenant, err := suite.service.GetTenantByID(ctx, tenantID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(tenant)
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
