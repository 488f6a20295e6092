package redissvc

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisService_UnreachableServer(t *testing.T) {
	_, err := NewRedisService(context.Background(), &redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	assert.Error(t, err)
}

func TestNewRedisService(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	svc, err := NewRedisService(context.Background(), &redis.Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	assert.NotNil(t, svc.Rdb())
}
