package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/utils/pagination"
)

type requestLogService struct {
	BaseService
	logRepo portsrepo.RequestLogReader
}

// NewRequestLogService creates the audit log read service.
func NewRequestLogService(logRepo portsrepo.RequestLogReader) portssvc.RequestLogSvc {
	return &requestLogService{logRepo: logRepo}
}

var _ portssvc.RequestLogSvc = (*requestLogService)(nil)

func (s *requestLogService) ListLogs(ctx context.Context, apiKey string, limit int, nextToken string) ([]domain.RequestLog, string, error) {
	if limit <= 0 {
		if nextToken != "" {
			return nil, "", apperrors.Wrap(apperrors.KindInvalidRequest, "nextToken requires limit.", apperrors.ErrValidation)
		}
		logs, err := s.logRepo.FindRequestLogs(ctx, apiKey)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list request logs: %w", err)
		}
		return logs, "", nil
	}

	var after *domain.LogCursor
	if nextToken != "" {
		cursor, err := pagination.DecodeLogCursor(nextToken)
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.KindInvalidRequest, "Invalid nextToken.", err)
		}
		after = &cursor
	}

	// Fetch one extra row to learn whether another page exists.
	logs, err := s.logRepo.FindRequestLogsPage(ctx, apiKey, after, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list request logs: %w", err)
	}

	next := ""
	if len(logs) > limit {
		logs = logs[:limit]
		last := logs[len(logs)-1]
		next = pagination.EncodeLogCursor(domain.LogCursor{Timestamp: last.Timestamp, ID: last.ID})
	}
	return logs, next, nil
}
