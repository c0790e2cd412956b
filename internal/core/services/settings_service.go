package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
)

type settingsService struct {
	BaseService
	store portsrepo.KVStoreFacade
}

// NewSettingsService creates a settings service persisting preferences in store.
func NewSettingsService(store portsrepo.KVStoreFacade) portssvc.SettingsSvcFacade {
	return &settingsService{store: store}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func settingsKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (s *settingsService) Get(ctx context.Context, userID int64) (domain.Settings, error) {
	data, err := s.store.Get(ctx, portsrepo.NamespaceSettings, settingsKey(userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.DefaultSettings(), nil
		}
		s.LogError(ctx, err, "Failed to load settings", slog.Int64("user_id", userID))
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.LogError(ctx, err, "Stored settings are unreadable, using defaults", slog.Int64("user_id", userID))
		return domain.DefaultSettings(), nil
	}
	return settings.Normalize(), nil
}

func (s *settingsService) Update(ctx context.Context, userID int64, settings domain.Settings) (domain.Settings, error) {
	if settings.DefaultRateType == "" {
		settings.DefaultRateType = domain.RateEffective
	}

	fields := map[string]string{}
	if !settings.Currency.Valid() {
		fields["currency"] = "must be one of PEN, USD"
	}
	if !settings.DefaultRateType.Valid() {
		fields["defaultRateType"] = "must be one of EFFECTIVE, NOMINAL"
	}
	if settings.DefaultCapitalization != nil && !settings.DefaultCapitalization.Valid() {
		fields["defaultCapitalization"] = "is invalid"
	}
	if len(fields) > 0 {
		return domain.Settings{}, apperrors.NewValidationError(fields)
	}

	settings = settings.Normalize()
	data, err := json.Marshal(settings)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Put(ctx, portsrepo.NamespaceSettings, settingsKey(userID), data, 0); err != nil {
		s.LogError(ctx, err, "Failed to save settings", slog.Int64("user_id", userID))
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.LogInfo(ctx, "Settings updated", slog.Int64("user_id", userID), slog.String("currency", string(settings.Currency)))
	return settings, nil
}
