package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easyshop/ledger/internal/apperrors"
	"github.com/easyshop/ledger/internal/core/domain"
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
)

// partyService provides read access to party balances and statements.
// Balances are mutated only by the recorder as part of its atomic unit.
type partyService struct {
	partyRepo    portsrepo.PartyRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, currencyRepo portsrepo.CurrencyReader) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo, currencyRepo: currencyRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

func (s *partyService) GetBalance(ctx context.Context, tenantID string, party domain.PartyRef) (*domain.PartyBalance, error) {
	balance, err := s.partyRepo.FindBalance(ctx, tenantID, party)
	if err != nil {
		return nil, fmt.Errorf("failed to get party balance: %w", err)
	}

	baseCode := ""
	base, err := s.currencyRepo.FindBaseCurrency(ctx, tenantID)
	if err != nil && !errors.Is(err, apperrors.ErrNoBaseCurrency) {
		return nil, err
	}
	if base != nil {
		baseCode = base.CurrencyCode
	}

	return &domain.PartyBalance{
		TenantID:     tenantID,
		Party:        party,
		Balance:      balance,
		CurrencyCode: baseCode,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

func (s *partyService) ListStatements(ctx context.Context, tenantID string, party domain.PartyRef, limit int, nextToken string) ([]domain.Statement, string, error) {
	if limit <= 0 {
		limit = 50
	}
	var token *string
	if nextToken != "" {
		token = &nextToken
	}

	statements, next, err := s.partyRepo.ListStatements(ctx, tenantID, party, limit, token)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list party statements: %w", err)
	}
	if statements == nil {
		statements = []domain.Statement{}
	}
	out := ""
	if next != nil {
		out = *next
	}
	return statements, out, nil
}
