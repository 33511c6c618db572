package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TenantRepo       TenantRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	PriceRepo        PriceRepositoryFacade
	DrawerRepo       DrawerRepositoryFacade
	PartyRepo        PartyRepositoryFacade
	LedgerRepo       LedgerRepositoryWithTx
	ReportingRepo    ReportingRepository
}
