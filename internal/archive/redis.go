package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"machikoro/internal/engine"
)

// RedisStore keeps each table's events in a Redis list that expires after
// ttl of inactivity.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to addr and checks the connection.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func eventsKey(table string) string {
	return fmt.Sprintf("table:%s:events", table)
}

func (s *RedisStore) Append(ctx context.Context, table string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}
	encoded, err := encode(events)
	if err != nil {
		return err
	}
	values := make([]any, len(encoded))
	for i, data := range encoded {
		values[i] = data
	}

	key := eventsKey(table)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, values...)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history %s: %w", table, err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, table string) ([]json.RawMessage, error) {
	items, err := s.rdb.LRange(ctx, eventsKey(table), 0, -1).Result()
	if err == redis.Nil || (err == nil && len(items) == 0) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, table)
	}
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", table, err)
	}
	out := make([]json.RawMessage, len(items))
	for i, item := range items {
		out[i] = json.RawMessage(item)
	}
	return out, nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
