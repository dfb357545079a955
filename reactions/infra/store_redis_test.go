package infra

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reaction-counter/reactions/domain"
)

// Os testes de Redis precisam de um servidor real: TEST_REDIS_ADDR=localhost:6379.
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis store tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisStore_Contract(t *testing.T) {
	rdb := newTestRedis(t)
	runStoreContract(t, func(t *testing.T) domain.Store {
		// prefixo único por subteste para não precisar de FLUSHDB
		prefix := "test:" + uuid.NewString()
		t.Cleanup(func() {
			ctx := context.Background()
			keys, _ := rdb.Keys(ctx, prefix+":*").Result()
			if len(keys) > 0 {
				_ = rdb.Del(ctx, keys...).Err()
			}
		})
		return NewRedisStore(rdb, WithKeyPrefix(prefix))
	})
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	rdb := newTestRedis(t)
	prefix := "test:" + uuid.NewString()
	s := NewRedisStore(rdb, WithKeyPrefix(prefix))
	ctx := context.Background()
	t.Cleanup(func() { _ = rdb.Del(ctx, prefix+":bad").Err() })

	require.NoError(t, rdb.Set(ctx, prefix+":bad", "{not json", 0).Err())

	_, err := s.Get(ctx, "bad")
	assert.ErrorContains(t, err, "decode record")
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	s := NewRedisStore(nil)
	assert.Equal(t, "reactions:post", s.key("post"))

	s = NewRedisStore(nil, WithKeyPrefix(" blog:reactions: "))
	assert.Equal(t, "blog:reactions:post", s.key("post"))

	s = NewRedisStore(nil, WithKeyPrefix(""))
	assert.Equal(t, "reactions:post", s.key("post"))
}
