package repositories

import (
	"context"
	"time"
)

// CacheStore is a string key-value cache with per-key expiry and string sets.
// Absent and expired keys read as misses, never as errors.
type CacheStore interface {
	GetString(ctx context.Context, key string) (value string, found bool, err error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	SetMembers(ctx context.Context, key string) ([]string, error)
	AddToSet(ctx context.Context, key string, values ...string) error
	// SetTTL applies ttl to the whole key, for sets as well as strings.
	SetTTL(ctx context.Context, key string, ttl time.Duration) error
}
