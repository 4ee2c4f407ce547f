package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDailyQuota(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 100},
		{time.Wednesday, 100},
		{time.Friday, 100},
		{time.Saturday, 200},
		{time.Sunday, 200},
	}

	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DailyQuota(tt.day))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	ts := time.Date(2024, time.March, 6, 17, 45, 12, 999, loc)

	got := domain.StartOfDay(ts)

	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "rate:USD:EUR", domain.RateCacheKey("usd", "EUR"))

	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole amount", 100, "conversion:USD:EUR:100.00"},
		{"already two decimals", 100.00, "conversion:USD:EUR:100.00"},
		{"sub-cent amount rounds into the same bucket", 100.001, "conversion:USD:EUR:100.00"},
		{"sub-cent amount rounds up", 100.009, "conversion:USD:EUR:100.01"},
		{"small amount", 0.5, "conversion:USD:EUR:0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ConversionCacheKey("usd", "eur", tt.amount))
		})
	}
}
