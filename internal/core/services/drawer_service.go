package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/dto"
)

// drawerService provides cash drawer registry and balance operations.
// Balances themselves are only ever moved by the recorder; the manual
// adjustment here goes through the recorder too, so every movement has a
// ledger entry behind it.
type drawerService struct {
	drawerRepo    portsrepo.DrawerRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
	conversionSvc portssvc.ConversionSvc
	recorderSvc   portssvc.RecorderWriterSvc
}

// NewDrawerService creates a new DrawerService.
func NewDrawerService(drawerRepo portsrepo.DrawerRepositoryFacade, reportingRepo portsrepo.ReportingRepository, conversionSvc portssvc.ConversionSvc, recorderSvc portssvc.RecorderWriterSvc) portssvc.DrawerSvcFacade {
	return &drawerService{
		drawerRepo:    drawerRepo,
		reportingRepo: reportingRepo,
		conversionSvc: conversionSvc,
		recorderSvc:   recorderSvc,
	}
}

var _ portssvc.DrawerSvcFacade = (*drawerService)(nil)

func (s *drawerService) CreateDrawer(ctx context.Context, tenantID string, req dto.CreateDrawerRequest, creatorUserID string) (*domain.CashDrawer, error) {
	now := time.Now().UTC()

	drawer := domain.CashDrawer{
		DrawerID:    uuid.NewString(),
		TenantID:    tenantID,
		LocationID:  req.LocationID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.drawerRepo.SaveDrawer(ctx, drawer); err != nil {
		return nil, fmt.Errorf("failed to create drawer: %w", err)
	}
	return &drawer, nil
}

func (s *drawerService) GetDrawerByID(ctx context.Context, tenantID, drawerID string) (*domain.CashDrawer, error) {
	drawer, err := s.drawerRepo.FindDrawerByID(ctx, tenantID, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drawer: %w", err)
	}
	return drawer, nil
}

func (s *drawerService) ListDrawers(ctx context.Context, tenantID string) ([]domain.CashDrawer, error) {
	drawers, err := s.drawerRepo.ListDrawers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawers: %w", err)
	}
	if drawers == nil {
		return []domain.CashDrawer{}, nil
	}
	return drawers, nil
}

func (s *drawerService) Balance(ctx context.Context, tenantID, drawerID, currencyCode string) (*domain.CashDrawerBalance, error) {
	if _, err := s.drawerRepo.FindDrawerByID(ctx, tenantID, drawerID); err != nil {
		return nil, fmt.Errorf("failed to get drawer: %w", err)
	}

	amount, err := s.drawerRepo.FindBalance(ctx, tenantID, drawerID, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get drawer balance: %w", err)
	}
	return &domain.CashDrawerBalance{
		DrawerID:     drawerID,
		CurrencyCode: currencyCode,
		Amount:       amount,
	}, nil
}

func (s *drawerService) ListBalances(ctx context.Context, tenantID, drawerID string) ([]domain.CashDrawerBalance, error) {
	if _, err := s.drawerRepo.FindDrawerByID(ctx, tenantID, drawerID); err != nil {
		return nil, fmt.Errorf("failed to get drawer: %w", err)
	}

	balances, err := s.drawerRepo.ListBalances(ctx, tenantID, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawer balances: %w", err)
	}
	if balances == nil {
		return []domain.CashDrawerBalance{}, nil
	}
	return balances, nil
}

// TotalInBase values every bucket of the drawer in base currency at current
// rates. The second return reports whether any bucket needed a fallback rate.
func (s *drawerService) TotalInBase(ctx context.Context, tenantID, drawerID string) (decimal.Decimal, bool, error) {
	balances, err := s.ListBalances(ctx, tenantID, drawerID)
	if err != nil {
		return decimal.Zero, false, err
	}

	now := time.Now().UTC()
	total := decimal.Zero
	degraded := false
	for _, b := range balances {
		conv, err := s.conversionSvc.ConvertToBase(ctx, tenantID, b.Amount, b.CurrencyCode, now)
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("failed to value %s bucket: %w", b.CurrencyCode, err)
		}
		total = total.Add(conv.Amount)
		degraded = degraded || conv.Degraded()
	}
	return total, degraded, nil
}

func (s *drawerService) Reconcile(ctx context.Context, tenantID, drawerID string) ([]domain.DrawerReconciliation, error) {
	if _, err := s.drawerRepo.FindDrawerByID(ctx, tenantID, drawerID); err != nil {
		return nil, fmt.Errorf("failed to get drawer: %w", err)
	}

	rows, err := s.reportingRepo.ReconcileDrawer(ctx, tenantID, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile drawer: %w", err)
	}
	if rows == nil {
		return []domain.DrawerReconciliation{}, nil
	}
	return rows, nil
}

// AdjustBalance applies a manual correction to one bucket. The correction is
// recorded as an adjustment entry so the bucket never moves without a ledger
// trail behind it.
func (s *drawerService) AdjustBalance(ctx context.Context, tenantID, drawerID, currencyCode string, delta decimal.Decimal, description string, creatorUserID string) error {
	if delta.IsZero() {
		return fmt.Errorf("%w: adjustment delta must be non-zero", apperrors.ErrValidation)
	}
	if _, err := s.drawerRepo.FindDrawerByID(ctx, tenantID, drawerID); err != nil {
		return fmt.Errorf("failed to get drawer: %w", err)
	}

	req := dto.RecordEntryRequest{
		Amount:       delta,
		CurrencyCode: currencyCode,
		Type:         string(domain.Adjustment),
		Description:  description,
		Reference:    &dto.ReferenceRequest{Kind: string(domain.RefAdjustment)},
		DrawerID:     &drawerID,
		IsDirect:     true,
	}
	if _, err := s.recorderSvc.RecordEntry(ctx, tenantID, req, creatorUserID); err != nil {
		return fmt.Errorf("failed to record drawer adjustment: %w", err)
	}
	return nil
}
