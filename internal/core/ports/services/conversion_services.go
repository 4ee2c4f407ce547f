package services

import (
	"context"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
)

// RateLimiterSvc admits or rejects a conversion for a key based on its audit log.
type RateLimiterSvc interface {
	Check(ctx context.Context, apiKey string) error
}

// CurrencyValidatorSvc decides whether a code is quoted by the upstream provider.
type CurrencyValidatorSvc interface {
	IsValid(ctx context.Context, code string) (bool, error)
}

// ConversionSvc runs a single conversion request end to end.
type ConversionSvc interface {
	Convert(ctx context.Context, apiKey, from, to string, amount float64) (float64, error)
}

// RequestLogSvc exposes a key's audit log.
type RequestLogSvc interface {
	// ListLogs returns the full history when limit is 0. Otherwise it returns
	// one page and a token for the next one, empty on the last page.
	ListLogs(ctx context.Context, apiKey string, limit int, nextToken string) ([]domain.RequestLog, string, error)
}
