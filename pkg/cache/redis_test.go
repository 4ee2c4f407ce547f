package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/currency_conversion_service/pkg/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0", time.Second)
	require.NoError(t, err)
	defer cache.CloseRedisClient(client)

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := cache.NewRedisClient(context.Background(), "", time.Second)
	assert.Error(t, err)

	_, err = cache.NewRedisClient(context.Background(), "not-a-url", time.Second)
	assert.Error(t, err)
}
