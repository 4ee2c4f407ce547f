package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// CooldownWindow is the minimum interval between two logged requests of one key.
	CooldownWindow = 2 * time.Minute
	WeekdayQuota   = 100
	WeekendQuota   = 200

	RateCacheTTL       = 30 * time.Minute
	ConversionCacheTTL = 5 * time.Minute
	ValidCurrenciesTTL = time.Hour

	ValidCurrenciesKey = "validCurrencies"
)

// DailyQuota returns the number of logged requests a key may make on the given day.
func DailyQuota(day time.Weekday) int {
	if day == time.Saturday || day == time.Sunday {
		return WeekendQuota
	}
	return WeekdayQuota
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// RateCacheKey is the cache key of the from->to exchange rate.
func RateCacheKey(from, to string) string {
	return "rate:" + strings.ToUpper(from) + ":" + strings.ToUpper(to)
}

// ConversionCacheKey is the cache key of a full conversion. The amount is
// rendered with two decimals, so 100 and 100.001 share an entry.
func ConversionCacheKey(from, to string, amount float64) string {
	return fmt.Sprintf("conversion:%s:%s:%.2f", strings.ToUpper(from), strings.ToUpper(to), amount)
}
