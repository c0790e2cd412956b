package services

import (
	"github.com/JuanPescoran/bond-valuation-app/internal/core/events"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, bus *events.Bus) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Events: bus}

	container.Auth = NewAuthService(repos.Backend, repos.Store, cfg.SessionTTL)
	container.Settings = NewSettingsService(repos.Store)
	container.History = NewHistoryService(repos.Backend, WithHistoryMaxAge(cfg.HistoryCacheTTL))
	container.Valuation = NewValuationService(
		repos.Backend,
		container.Settings,
		WithPublisher(bus),
		WithHistoryEndpoint(cfg.HistoryEndpointEnabled),
	)

	// Every mutation changes what the owner's history list would show.
	history := container.History
	bus.Subscribe(func(e events.Event) {
		history.Invalidate(e.UserID)
	}, events.AllTypes...)

	return container
}
