package handlers_test

import (
	"context"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) LookupByKey(ctx context.Context, apiKey string) (*domain.User, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) LookupByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) EnsureSeedUser(ctx context.Context, name string) (*domain.User, bool, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, apiKey, from, to string, amount float64) (float64, error) {
	args := m.Called(ctx, apiKey, from, to, amount)
	return args.Get(0).(float64), args.Error(1)
}

var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

type MockCurrencyValidator struct {
	mock.Mock
}

func (m *MockCurrencyValidator) IsValid(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.CurrencyValidatorSvc = (*MockCurrencyValidator)(nil)

type MockRequestLogService struct {
	mock.Mock
}

func (m *MockRequestLogService) ListLogs(ctx context.Context, apiKey string, limit int, nextToken string) ([]domain.RequestLog, string, error) {
	args := m.Called(ctx, apiKey, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.RequestLog), args.String(1), args.Error(2)
}

var _ portssvc.RequestLogSvc = (*MockRequestLogService)(nil)
