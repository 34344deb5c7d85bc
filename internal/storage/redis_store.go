package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"garim-lab/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore caches feed documents in Redis so that several server
// processes share one upstream fetch per TTL window.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "garim"}
}

func (s *RedisStore) itemsKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Get loads cached items. A missing key is reported as ok=false without error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]model.NewsItem, bool, error) {
	b, err := s.rdb.Get(ctx, s.itemsKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []model.NewsItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Set stores items with the given expiry.
func (s *RedisStore) Set(ctx context.Context, key string, items []model.NewsItem, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.itemsKey(key), b, ttl).Err()
}

// TTL returns the remaining lifetime of a cached entry; ok is false when it is absent.
func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	d, err := s.rdb.TTL(ctx, s.itemsKey(key)).Result()
	if err != nil {
		return 0, false, err
	}
	// go-redis reports -2 for a missing key and -1 for no expiry
	if d < 0 && d != -1 {
		return 0, false, nil
	}
	return d, true, nil
}
