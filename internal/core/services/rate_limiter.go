package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
)

// rateLimiter enforces the per-key cooldown and daily quota against the audit
// log. It holds no state of its own, so concurrent requests of one key may
// both pass before either is logged.
type rateLimiter struct {
	BaseService
	logRepo  portsrepo.RequestLogReader
	location *time.Location
}

// RateLimiterOption is a functional option for configuring the rate limiter
type RateLimiterOption func(*rateLimiter)

// WithLimiterClock sets the clock used to evaluate both policies.
func WithLimiterClock(clock func() time.Time) RateLimiterOption {
	return func(l *rateLimiter) {
		l.Clock = clock
	}
}

// WithLimiterLocation sets the time zone that defines a quota day.
func WithLimiterLocation(loc *time.Location) RateLimiterOption {
	return func(l *rateLimiter) {
		if loc != nil {
			l.location = loc
		}
	}
}

// NewRateLimiter creates the audit-log backed rate limiter.
func NewRateLimiter(logRepo portsrepo.RequestLogReader, options ...RateLimiterOption) portssvc.RateLimiterSvc {
	l := &rateLimiter{
		logRepo:  logRepo,
		location: time.Local,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

var _ portssvc.RateLimiterSvc = (*rateLimiter)(nil)

func (l *rateLimiter) Check(ctx context.Context, apiKey string) error {
	now := l.Now().In(l.location)

	recent, err := l.logRepo.FindRequestLogsSince(ctx, apiKey, now.Add(-domain.CooldownWindow))
	if err != nil {
		return fmt.Errorf("failed to read recent requests: %w", err)
	}
	if len(recent) > 0 {
		l.LogInfo(ctx, "Conversion rejected by cooldown", slog.Int("recent_requests", len(recent)))
		return apperrors.NewAppError(apperrors.KindCooldown, apperrors.MsgCooldown)
	}

	quota := domain.DailyQuota(now.Weekday())
	today, err := l.logRepo.FindRequestLogsSince(ctx, apiKey, domain.StartOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to read today's requests: %w", err)
	}
	if len(today) >= quota {
		l.LogInfo(ctx, "Conversion rejected by daily quota", slog.Int("requests_today", len(today)), slog.Int("quota", quota))
		return apperrors.NewAppError(apperrors.KindQuotaExceeded, apperrors.MsgQuotaExceeded)
	}
	return nil
}
