package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	"github.com/SscSPs/currency_conversion_service/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// conversionService runs the conversion pipeline: authenticate, limit,
// conversion cache, rate cache or upstream, compute, cache, audit.
type conversionService struct {
	BaseService
	users   portssvc.UserReaderSvc
	limiter portssvc.RateLimiterSvc
	cache   portsrepo.CacheStore
	rates   providers.RatesProvider
	logRepo portsrepo.RequestLogWriter
}

// ConversionOption is a functional option for configuring the conversion service
type ConversionOption func(*conversionService)

// WithConversionClock sets the clock used to timestamp audit entries.
func WithConversionClock(clock func() time.Time) ConversionOption {
	return func(s *conversionService) {
		s.Clock = clock
	}
}

// NewConversionService creates the conversion pipeline.
func NewConversionService(
	users portssvc.UserReaderSvc,
	limiter portssvc.RateLimiterSvc,
	cache portsrepo.CacheStore,
	rates providers.RatesProvider,
	logRepo portsrepo.RequestLogWriter,
	options ...ConversionOption,
) portssvc.ConversionSvc {
	svc := &conversionService{
		users:   users,
		limiter: limiter,
		cache:   cache,
		rates:   rates,
		logRepo: logRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

// Convert assumes amount has been validated as positive and finite. A failure
// at any stage returns before the audit entry is written.
func (s *conversionService) Convert(ctx context.Context, apiKey, from, to string, amount float64) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	logger := s.GetLogger(ctx).With(slog.String("from", from), slog.String("to", to))

	user, err := s.users.LookupByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, apperrors.NewAppError(apperrors.KindInvalidAPIKey, apperrors.MsgInvalidAPIKey)
	}

	if err := s.limiter.Check(ctx, apiKey); err != nil {
		return 0, err
	}

	conversionKey := domain.ConversionCacheKey(from, to, amount)
	cached, found, err := s.cache.GetString(ctx, conversionKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read conversion cache: %w", err)
	}
	if found {
		if value, perr := decodeAmount(cached); perr == nil {
			logger.Debug("Conversion cache hit", slog.String("key", conversionKey))
			return value, nil
		}
		logger.Warn("Ignoring unparseable cached conversion", slog.String("key", conversionKey), slog.String("value", cached))
	}

	rate, err := s.resolveRate(ctx, logger, from, to)
	if err != nil {
		return 0, err
	}

	converted := amount * rate
	if math.IsInf(converted, 0) || math.IsNaN(converted) {
		return 0, apperrors.NewAppError(apperrors.KindInvalidAmount, "Converted amount is out of range.")
	}

	if err := s.cache.SetString(ctx, conversionKey, encodeAmount(converted), domain.ConversionCacheTTL); err != nil {
		s.LogWarn(ctx, err, "Failed to cache conversion", slog.String("key", conversionKey))
	}

	entry := &domain.RequestLog{
		APIKey:          apiKey,
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          amount,
		ConvertedAmount: converted,
		Timestamp:       s.Now().UTC().Truncate(time.Millisecond),
	}
	if err := s.logRepo.SaveRequestLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append request log")
		return 0, fmt.Errorf("failed to record conversion: %w", err)
	}

	logger.Info("Conversion completed", slog.Int64("request_log_id", entry.ID), slog.Float64("rate", rate))
	return converted, nil
}

// resolveRate reads the rate cache and falls back to the provider on a miss
// or an unparseable entry.
func (s *conversionService) resolveRate(ctx context.Context, logger *slog.Logger, from, to string) (float64, error) {
	rateKey := domain.RateCacheKey(from, to)
	cached, found, err := s.cache.GetString(ctx, rateKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read rate cache: %w", err)
	}
	if found {
		if rate, perr := decodeAmount(cached); perr == nil {
			logger.Debug("Rate cache hit", slog.String("key", rateKey))
			return rate, nil
		}
		logger.Warn("Ignoring unparseable cached rate", slog.String("key", rateKey), slog.String("value", cached))
	}

	rate, err := s.rates.FetchRate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetString(ctx, rateKey, encodeAmount(rate), domain.RateCacheTTL); err != nil {
		s.LogWarn(ctx, err, "Failed to cache rate", slog.String("key", rateKey))
	}
	return rate, nil
}

// encodeAmount renders v as the shortest decimal string that parses back to v.
// Whole numbers keep one fractional digit, so 90 is stored as "90.0".
func encodeAmount(v float64) string {
	s := decimal.NewFromFloat(v).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func decodeAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("value %q out of range", s)
	}
	return v, nil
}
