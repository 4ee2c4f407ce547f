package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const (
	requestLogsTable = "request_logs"

	selectRequestLogFields = `id, api_key, from_currency, to_currency, amount, converted_amount, "timestamp"`

	insertRequestLogQuery = `
		INSERT INTO ` + requestLogsTable + ` (api_key, from_currency, to_currency, amount, converted_amount, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	findRequestLogsSinceQuery = `
		SELECT ` + selectRequestLogFields + `
		FROM ` + requestLogsTable + `
		WHERE api_key = $1 AND "timestamp" > $2`

	findRequestLogsQuery = `
		SELECT ` + selectRequestLogFields + `
		FROM ` + requestLogsTable + `
		WHERE api_key = $1
		ORDER BY "timestamp", id`

	findRequestLogsFirstPageQuery = `
		SELECT ` + selectRequestLogFields + `
		FROM ` + requestLogsTable + `
		WHERE api_key = $1
		ORDER BY "timestamp", id
		LIMIT $2`

	findRequestLogsNextPageQuery = `
		SELECT ` + selectRequestLogFields + `
		FROM ` + requestLogsTable + `
		WHERE api_key = $1 AND ("timestamp", id) > ($2, $3)
		ORDER BY "timestamp", id
		LIMIT $4`
)

type PgxRequestLogRepository struct {
	BaseRepository
}

func newPgxRequestLogRepository(db DBTX) *PgxRequestLogRepository {
	return &PgxRequestLogRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxRequestLogRepository implements portsrepo.RequestLogRepositoryFacade
var _ portsrepo.RequestLogRepositoryFacade = (*PgxRequestLogRepository)(nil)

func (r *PgxRequestLogRepository) SaveRequestLog(ctx context.Context, entry *domain.RequestLog) error {
	err := r.DB.QueryRow(ctx, insertRequestLogQuery,
		entry.APIKey,
		entry.FromCurrency,
		entry.ToCurrency,
		entry.Amount,
		entry.ConvertedAmount,
		entry.Timestamp,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to save request log: %w", err)
	}
	return nil
}

func (r *PgxRequestLogRepository) FindRequestLogsSince(ctx context.Context, apiKey string, since time.Time) ([]domain.RequestLog, error) {
	rows, err := r.DB.Query(ctx, findRequestLogsSinceQuery, apiKey, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query request logs since %s: %w", since.Format(time.RFC3339), err)
	}
	return collectRequestLogs(rows)
}

func (r *PgxRequestLogRepository) FindRequestLogs(ctx context.Context, apiKey string) ([]domain.RequestLog, error) {
	rows, err := r.DB.Query(ctx, findRequestLogsQuery, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query request logs: %w", err)
	}
	return collectRequestLogs(rows)
}

func (r *PgxRequestLogRepository) FindRequestLogsPage(ctx context.Context, apiKey string, after *domain.LogCursor, limit int) ([]domain.RequestLog, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = r.DB.Query(ctx, findRequestLogsFirstPageQuery, apiKey, limit)
	} else {
		rows, err = r.DB.Query(ctx, findRequestLogsNextPageQuery, apiKey, after.Timestamp, after.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query request log page: %w", err)
	}
	return collectRequestLogs(rows)
}

func collectRequestLogs(rows pgx.Rows) ([]domain.RequestLog, error) {
	defer rows.Close()

	logs := []domain.RequestLog{}
	for rows.Next() {
		var entry domain.RequestLog
		err := rows.Scan(
			&entry.ID,
			&entry.APIKey,
			&entry.FromCurrency,
			&entry.ToCurrency,
			&entry.Amount,
			&entry.ConvertedAmount,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request log row: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request log rows: %w", err)
	}
	return logs, nil
}
