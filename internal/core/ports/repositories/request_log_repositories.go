package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
)

// RequestLogReader defines read operations for the conversion audit log
type RequestLogReader interface {
	// FindRequestLogsSince returns the key's entries with timestamp strictly after since.
	FindRequestLogsSince(ctx context.Context, apiKey string, since time.Time) ([]domain.RequestLog, error)

	// FindRequestLogs returns the full history of the key.
	FindRequestLogs(ctx context.Context, apiKey string) ([]domain.RequestLog, error)

	// FindRequestLogsPage returns up to limit entries ordered by (timestamp, id),
	// starting after the cursor when one is given.
	FindRequestLogsPage(ctx context.Context, apiKey string, after *domain.LogCursor, limit int) ([]domain.RequestLog, error)
}

// RequestLogWriter defines write operations for the conversion audit log
type RequestLogWriter interface {
	// SaveRequestLog appends an entry and sets its ID.
	SaveRequestLog(ctx context.Context, entry *domain.RequestLog) error
}

// RequestLogRepositoryFacade combines all request log repository interfaces
type RequestLogRepositoryFacade interface {
	RequestLogReader
	RequestLogWriter
}
