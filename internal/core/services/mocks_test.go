package services_test

import (
	"context"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock KVStore ---
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	args := m.Called(ctx, namespace, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVStore) Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, namespace, key, value, ttl)
	return args.Error(0)
}

func (m *MockKVStore) Delete(ctx context.Context, namespace, key string) error {
	args := m.Called(ctx, namespace, key)
	return args.Error(0)
}

func (m *MockKVStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock BackendGateway ---
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SignIn(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockBackend) SignUp(ctx context.Context, username, password string, roles []string) (*domain.User, error) {
	args := m.Called(ctx, username, password, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockBackend) ListValuationsByUser(ctx context.Context, token string, userID int64) ([]domain.ValuationResponse, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValuationResponse), args.Error(1)
}

func (m *MockBackend) GetValuation(ctx context.Context, token string, id int64) (*domain.ValuationResponse, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationResponse), args.Error(1)
}

func (m *MockBackend) CreateValuation(ctx context.Context, token string, req domain.CreateValuationRequest) (*domain.ValuationResponse, error) {
	args := m.Called(ctx, token, req)
	if fn, ok := args.Get(0).(func(context.Context, string, domain.CreateValuationRequest) *domain.ValuationResponse); ok {
		return fn(ctx, token, req), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationResponse), args.Error(1)
}

func (m *MockBackend) DeleteValuation(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBackend) SaveToHistory(ctx context.Context, token string, valuationID int64, name string) (*domain.HistoryItem, error) {
	args := m.Called(ctx, token, valuationID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryItem), args.Error(1)
}

// --- Mock SettingsSvc ---
type MockSettingsSvc struct {
	mock.Mock
}

func (m *MockSettingsSvc) Get(ctx context.Context, userID int64) (domain.Settings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsSvc) Update(ctx context.Context, userID int64, settings domain.Settings) (domain.Settings, error) {
	args := m.Called(ctx, userID, settings)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func testSession() *domain.Session {
	return &domain.Session{
		User:  domain.User{ID: 7, Username: "ana@example.com", Roles: []string{domain.RoleUser}},
		Token: "token-7",
	}
}
