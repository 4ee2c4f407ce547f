package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/core/services"
	"github.com/SscSPs/currency_conversion_service/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RequestLogServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRequestLogRepository
	service  portssvc.RequestLogSvc
	ctx      context.Context
	logs     []domain.RequestLog
}

func (s *RequestLogServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockRequestLogRepository)
	s.service = services.NewRequestLogService(s.mockRepo)
	s.ctx = context.Background()

	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s.logs = []domain.RequestLog{
		{ID: 1, APIKey: "k", FromCurrency: "USD", ToCurrency: "EUR", Amount: 100, ConvertedAmount: 90, Timestamp: base},
		{ID: 2, APIKey: "k", FromCurrency: "USD", ToCurrency: "GBP", Amount: 10, ConvertedAmount: 8, Timestamp: base.Add(3 * time.Minute)},
		{ID: 3, APIKey: "k", FromCurrency: "EUR", ToCurrency: "USD", Amount: 5, ConvertedAmount: 5.5, Timestamp: base.Add(6 * time.Minute)},
	}
}

func (s *RequestLogServiceTestSuite) TearDownTest() {
	s.mockRepo.AssertExpectations(s.T())
}

func TestRequestLogServiceSuite(t *testing.T) {
	suite.Run(t, new(RequestLogServiceTestSuite))
}

func (s *RequestLogServiceTestSuite) TestFullHistoryWithoutLimit() {
	s.mockRepo.On("FindRequestLogs", s.ctx, "k").Return(s.logs, nil).Once()

	logs, next, err := s.service.ListLogs(s.ctx, "k", 0, "")

	s.NoError(err)
	s.Equal(s.logs, logs)
	s.Empty(next)
}

func (s *RequestLogServiceTestSuite) TestTokenWithoutLimit() {
	_, _, err := s.service.ListLogs(s.ctx, "k", 0, "abc")

	s.Equal(apperrors.KindInvalidRequest, apperrors.KindOf(err))
}

func (s *RequestLogServiceTestSuite) TestFirstPageHasNextToken() {
	s.mockRepo.On("FindRequestLogsPage", s.ctx, "k", (*domain.LogCursor)(nil), 3).Return(s.logs, nil).Once()

	logs, next, err := s.service.ListLogs(s.ctx, "k", 2, "")

	s.Require().NoError(err)
	s.Equal(s.logs[:2], logs)
	s.Require().NotEmpty(next)

	cursor, err := pagination.DecodeLogCursor(next)
	s.Require().NoError(err)
	s.Equal(int64(2), cursor.ID)
	s.True(cursor.Timestamp.Equal(s.logs[1].Timestamp))
}

func (s *RequestLogServiceTestSuite) TestLastPageHasNoToken() {
	token := pagination.EncodeLogCursor(domain.LogCursor{Timestamp: s.logs[1].Timestamp, ID: 2})
	afterSecond := mock.MatchedBy(func(c *domain.LogCursor) bool {
		return c != nil && c.ID == 2 && c.Timestamp.Equal(s.logs[1].Timestamp)
	})
	s.mockRepo.On("FindRequestLogsPage", s.ctx, "k", afterSecond, 3).Return(s.logs[2:], nil).Once()

	logs, next, err := s.service.ListLogs(s.ctx, "k", 2, token)

	s.NoError(err)
	s.Equal(s.logs[2:], logs)
	s.Empty(next)
}

func (s *RequestLogServiceTestSuite) TestInvalidToken() {
	_, _, err := s.service.ListLogs(s.ctx, "k", 2, "%%%not-base64")

	s.Equal(apperrors.KindInvalidRequest, apperrors.KindOf(err))
	s.Equal("Invalid nextToken.", apperrors.MessageOf(err))
}
