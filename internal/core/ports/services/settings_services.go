package services

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
)

// SettingsSvcFacade defines per-user display preferences.
type SettingsSvcFacade interface {
	// Get returns the saved settings of userID, or the defaults when none were saved.
	Get(ctx context.Context, userID int64) (domain.Settings, error)

	// Update validates, normalizes and saves settings for userID.
	Update(ctx context.Context, userID int64, settings domain.Settings) (domain.Settings, error)
}
