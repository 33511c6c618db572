package services

import (
	portsrepo "github.com/easyshop/ledger/internal/core/ports/repositories"
	portssvc "github.com/easyshop/ledger/internal/core/ports/services"
	"github.com/easyshop/ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Tenant = NewTenantService(repos.TenantRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Rates = NewRateService(repos.ExchangeRateRepo, repos.CurrencyRepo)
	container.Conversion = NewConversionService(container.Rates, repos.CurrencyRepo)
	container.Price = NewPriceService(repos.PriceRepo, repos.CurrencyRepo)

	// The recorder is the only write path into the ledger; the drawer service
	// routes its manual adjustments through it.
	container.Recorder = NewRecorderService(repos.LedgerRepo, repos.DrawerRepo, repos.CurrencyRepo, container.Conversion, cfg.RecorderSaveRetries)
	container.Drawer = NewDrawerService(repos.DrawerRepo, repos.ReportingRepo, container.Conversion, container.Recorder)
	container.Party = NewPartyService(repos.PartyRepo, repos.CurrencyRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Price, container.Conversion)

	return container
}
