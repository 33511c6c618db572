package pgsql

import (
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	priceRepo := newPgxPriceRepository(dbPool)
	drawerRepo := newPgxDrawerRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, drawerRepo, partyRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:       tenantRepo,
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		PriceRepo:        priceRepo,
		DrawerRepo:       drawerRepo,
		PartyRepo:        partyRepo,
		LedgerRepo:       ledgerRepo,
		ReportingRepo:    reportingRepo,
	}
}
