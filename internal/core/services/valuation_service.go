package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/events"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/valuation"
)

type valuationService struct {
	BaseService
	backend        portsrepo.BackendGatewayFacade
	settings       portssvc.SettingsSvcFacade
	publisher      events.Publisher
	validator      *valuation.Validator
	historyEnabled bool
}

// ValuationServiceOption is a functional option for configuring the valuation service
type ValuationServiceOption func(*valuationService)

// WithHistoryEndpoint toggles the backend POST /history call. When disabled,
// saving to history is acknowledged locally from the stored valuation.
func WithHistoryEndpoint(enabled bool) ValuationServiceOption {
	return func(s *valuationService) {
		s.historyEnabled = enabled
	}
}

// WithPublisher sets where mutation events are sent.
func WithPublisher(p events.Publisher) ValuationServiceOption {
	return func(s *valuationService) {
		s.publisher = p
	}
}

// NewValuationService creates a valuation service backed by the backend gateway.
// settings may be nil, in which case defaults apply to every user.
func NewValuationService(backend portsrepo.BackendGatewayFacade, settings portssvc.SettingsSvcFacade, options ...ValuationServiceOption) portssvc.ValuationSvcFacade {
	svc := &valuationService{
		backend:   backend,
		settings:  settings,
		validator: valuation.NewValidator(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ValuationSvcFacade = (*valuationService)(nil)

// validationContext gathers the inputs the validator reads besides the form.
// A settings failure degrades to defaults rather than blocking the user.
func (s *valuationService) validationContext(ctx context.Context, session *domain.Session) valuation.Context {
	vctx := valuation.Context{Session: session, Settings: domain.DefaultSettings()}
	if session == nil || s.settings == nil {
		return vctx
	}
	settings, err := s.settings.Get(ctx, session.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings, using defaults", slog.Int64("user_id", session.ID))
		return vctx
	}
	vctx.Settings = settings
	return vctx
}

func (s *valuationService) publish(e events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

func (s *valuationService) FormRules(ctx context.Context, session *domain.Session, rateType domain.RateType, graceType domain.GraceType) domain.FieldRules {
	return s.validator.FieldRules(s.validationContext(ctx, session), rateType, graceType)
}

func (s *valuationService) Validate(ctx context.Context, session *domain.Session, params domain.BondParameters) (*domain.CreateValuationRequest, error) {
	return s.validator.Validate(s.validationContext(ctx, session), params)
}

func (s *valuationService) Calculate(ctx context.Context, session *domain.Session, params domain.BondParameters) (*domain.ValuationResponse, error) {
	req, err := s.Validate(ctx, session, params)
	if err != nil {
		return nil, err
	}
	if err := s.RequireSession(session); err != nil {
		return nil, err
	}

	resp, err := s.backend.CreateValuation(ctx, session.Token, *req)
	if err != nil {
		s.LogError(ctx, err, "Failed to create valuation", slog.String("valuation_name", req.ValuationName))
		return nil, fmt.Errorf("failed to create valuation: %w", err)
	}
	if err := domain.CheckSchedule(resp.FaceValue, resp.CashFlow); err != nil {
		s.LogWarn(ctx, "Backend schedule is inconsistent", slog.Int64("valuation_id", resp.ID), slog.String("error", err.Error()))
	}

	e := events.New(events.ValuationCreated, session.ID, resp.ID)
	e.Name = resp.ValuationName
	s.publish(e)

	s.LogInfo(ctx, "Valuation created", slog.Int64("valuation_id", resp.ID), slog.Int("periods", len(resp.CashFlow)))
	return resp, nil
}

func (s *valuationService) Get(ctx context.Context, session *domain.Session, id int64) (*domain.ValuationResponse, error) {
	if err := s.RequireSession(session); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("valuation %d: %w", id, apperrors.ErrNotFound)
	}

	resp, err := s.backend.GetValuation(ctx, session.Token, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get valuation %d: %w", id, err)
	}
	// Valuations of other users are reported as missing.
	if resp.UserID != 0 && resp.UserID != session.ID {
		s.LogWarn(ctx, "Valuation belongs to another user", slog.Int64("valuation_id", id))
		return nil, fmt.Errorf("valuation %d: %w", id, apperrors.ErrNotFound)
	}
	return resp, nil
}

func (s *valuationService) Delete(ctx context.Context, session *domain.Session, id int64) error {
	if err := s.RequireSession(session); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("valuation %d: %w", id, apperrors.ErrNotFound)
	}

	if err := s.backend.DeleteValuation(ctx, session.Token, id); err != nil {
		s.LogError(ctx, err, "Failed to delete valuation", slog.Int64("valuation_id", id))
		return fmt.Errorf("failed to delete valuation %d: %w", id, err)
	}

	s.publish(events.New(events.ValuationDeleted, session.ID, id))
	s.LogInfo(ctx, "Valuation deleted", slog.Int64("valuation_id", id))
	return nil
}

func (s *valuationService) SaveToHistory(ctx context.Context, session *domain.Session, valuationID int64, name string) (*domain.HistoryItem, error) {
	if err := s.RequireSession(session); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	fields := map[string]string{}
	if valuationID <= 0 {
		fields["valuationId"] = "is required"
	}
	if name == "" {
		fields["name"] = "is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	var item *domain.HistoryItem
	if s.historyEnabled {
		saved, err := s.backend.SaveToHistory(ctx, session.Token, valuationID, name)
		if err != nil {
			s.LogError(ctx, err, "Failed to save valuation to history", slog.Int64("valuation_id", valuationID))
			return nil, fmt.Errorf("failed to save valuation %d to history: %w", valuationID, err)
		}
		item = saved
	} else {
		resp, err := s.Get(ctx, session, valuationID)
		if err != nil {
			return nil, err
		}
		local := domain.ToHistoryItem(*resp)
		local.Name = name
		item = &local
		s.LogDebug(ctx, "History endpoint disabled, save acknowledged locally", slog.Int64("valuation_id", valuationID))
	}

	e := events.New(events.HistorySaved, session.ID, valuationID)
	e.Name = name
	s.publish(e)
	return item, nil
}
