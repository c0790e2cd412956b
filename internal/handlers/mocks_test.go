package handlers_test

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock ValuationService ---
type MockValuationService struct {
	mock.Mock
}

func (m *MockValuationService) FormRules(ctx context.Context, session *domain.Session, rateType domain.RateType, graceType domain.GraceType) domain.FieldRules {
	args := m.Called(ctx, session, rateType, graceType)
	return args.Get(0).(domain.FieldRules)
}

func (m *MockValuationService) Get(ctx context.Context, session *domain.Session, id int64) (*domain.ValuationResponse, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationResponse), args.Error(1)
}

func (m *MockValuationService) Validate(ctx context.Context, session *domain.Session, params domain.BondParameters) (*domain.CreateValuationRequest, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateValuationRequest), args.Error(1)
}

func (m *MockValuationService) Calculate(ctx context.Context, session *domain.Session, params domain.BondParameters) (*domain.ValuationResponse, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationResponse), args.Error(1)
}

func (m *MockValuationService) Delete(ctx context.Context, session *domain.Session, id int64) error {
	return m.Called(ctx, session, id).Error(0)
}

func (m *MockValuationService) SaveToHistory(ctx context.Context, session *domain.Session, valuationID int64, name string) (*domain.HistoryItem, error) {
	args := m.Called(ctx, session, valuationID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryItem), args.Error(1)
}

var _ portssvc.ValuationSvcFacade = (*MockValuationService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context, session *domain.Session) ([]domain.HistoryItem, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryItem), args.Error(1)
}

func (m *MockHistoryService) Invalidate(userID int64) {
	m.Called(userID)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, userID int64) (domain.Settings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, userID int64, settings domain.Settings) (domain.Settings, error) {
	args := m.Called(ctx, userID, settings)
	return args.Get(0).(domain.Settings), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)
