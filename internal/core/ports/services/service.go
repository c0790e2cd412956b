package services

import "github.com/JuanPescoran/bond-valuation-app/internal/core/events"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth      AuthSvcFacade
	Valuation ValuationSvcFacade
	History   HistorySvcFacade
	Settings  SettingsSvcFacade
	Events    *events.Bus
}
