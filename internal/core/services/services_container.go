package services

import (
	"github.com/SscSPs/currency_conversion_service/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rates providers.RatesProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Limiter = NewRateLimiter(repos.RequestLogRepo, WithLimiterLocation(cfg.LimitsLocation))
	container.Currency = NewCurrencyValidator(repos.Cache, rates)
	container.Conversion = NewConversionService(
		container.User,
		container.Limiter,
		repos.Cache,
		rates,
		repos.RequestLogRepo,
	)
	container.RequestLog = NewRequestLogService(repos.RequestLogRepo)

	return container
}
