package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	"github.com/SscSPs/currency_conversion_service/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock RequestLogRepository ---
type MockRequestLogRepository struct {
	mock.Mock
}

func (m *MockRequestLogRepository) FindRequestLogsSince(ctx context.Context, apiKey string, since time.Time) ([]domain.RequestLog, error) {
	args := m.Called(ctx, apiKey, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestLog), args.Error(1)
}

func (m *MockRequestLogRepository) FindRequestLogs(ctx context.Context, apiKey string) ([]domain.RequestLog, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestLog), args.Error(1)
}

func (m *MockRequestLogRepository) FindRequestLogsPage(ctx context.Context, apiKey string, after *domain.LogCursor, limit int) ([]domain.RequestLog, error) {
	args := m.Called(ctx, apiKey, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestLog), args.Error(1)
}

func (m *MockRequestLogRepository) SaveRequestLog(ctx context.Context, entry *domain.RequestLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var _ portsrepo.RequestLogRepositoryFacade = (*MockRequestLogRepository)(nil)

// --- Mock CacheStore ---
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) GetString(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheStore) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheStore) SetMembers(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheStore) AddToSet(ctx context.Context, key string, values ...string) error {
	args := m.Called(ctx, key, values)
	return args.Error(0)
}

func (m *MockCacheStore) SetTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

var _ portsrepo.CacheStore = (*MockCacheStore)(nil)

// --- Mock RatesProvider ---
type MockRatesProvider struct {
	mock.Mock
}

func (m *MockRatesProvider) FetchAllSymbols(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRatesProvider) FetchRate(ctx context.Context, from, to string) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

var _ providers.RatesProvider = (*MockRatesProvider)(nil)

// --- Mock UserService (reader side) ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) LookupByKey(ctx context.Context, apiKey string) (*domain.User, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) LookupByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserReaderSvc = (*MockUserReader)(nil)

// --- Mock RateLimiter ---
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Check(ctx context.Context, apiKey string) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

var _ portssvc.RateLimiterSvc = (*MockRateLimiter)(nil)

func makeLogs(n int) []domain.RequestLog {
	return make([]domain.RequestLog, n)
}
