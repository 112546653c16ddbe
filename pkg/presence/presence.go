// Package presence tracks which users were active recently.
package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:presence:user:"

// Tracker records user activity and answers "who is online".
type Tracker interface {
	Touch(ctx context.Context, userID int64) error
	Online(ctx context.Context, userIDs []int64) (map[int64]bool, error)
	Count(ctx context.Context) (int64, error)
	Forget(ctx context.Context, userID int64) error
}

// RedisTracker keeps one key per active user that expires after the online window.
type RedisTracker struct {
	client *redis.Client
	window time.Duration
}

// NewRedisTracker connects and pings. Callers fall back to database presence on error.
func NewRedisTracker(addr, password string, db int, window time.Duration) (*RedisTracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisTrackerFromClient(client, window), nil
}

func NewRedisTrackerFromClient(client *redis.Client, window time.Duration) *RedisTracker {
	return &RedisTracker{client: client, window: window}
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

func (t *RedisTracker) Touch(ctx context.Context, userID int64) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := t.client.Set(ctx, key(userID), now, t.window).Err(); err != nil {
		return fmt.Errorf("touch presence %d: %w", userID, err)
	}
	return nil
}

func (t *RedisTracker) Online(ctx context.Context, userIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = key(id)
	}

	values, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read presence: %w", err)
	}

	for i, id := range userIDs {
		result[id] = values[i] != nil
	}
	return result, nil
}

// Count scans instead of KEYS so large keyspaces do not block the server.
func (t *RedisTracker) Count(ctx context.Context) (int64, error) {
	var count int64
	iter := t.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("count presence: %w", err)
	}
	return count, nil
}

func (t *RedisTracker) Forget(ctx context.Context, userID int64) error {
	err := t.client.Del(ctx, key(userID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("forget presence %d: %w", userID, err)
	}
	return nil
}

func (t *RedisTracker) Close() error {
	return t.client.Close()
}
