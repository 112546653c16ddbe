package presence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTracker uses a scratch DB on REDIS_ADDR and skips when redis is unreachable.
func newTestTracker(t *testing.T, window time.Duration) *RedisTracker {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return NewRedisTrackerFromClient(client, window)
}

func TestRedisTracker(t *testing.T) {
	tracker := newTestTracker(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, 1))
	require.NoError(t, tracker.Touch(ctx, 2))

	online, err := tracker.Online(ctx, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: true, 2: true, 3: false}, online)

	count, err := tracker.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, tracker.Forget(ctx, 1))
	require.NoError(t, tracker.Forget(ctx, 1))

	count, err = tracker.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisTracker_Expires(t *testing.T) {
	tracker := newTestTracker(t, time.Second)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, 7))
	time.Sleep(1500 * time.Millisecond)

	online, err := tracker.Online(ctx, []int64{7})
	require.NoError(t, err)
	assert.False(t, online[7])
}

func TestRedisTracker_EmptyLookup(t *testing.T) {
	tracker := NewRedisTrackerFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), time.Minute)
	online, err := tracker.Online(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, online)
}
