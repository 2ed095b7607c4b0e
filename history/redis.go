package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"youtube2mp3/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ytmp3:done:"

// RedisStore keeps one key per successfully converted url
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration // 0 keeps keys forever
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(url string) string {
	return keyPrefix + url
}

func (s *RedisStore) Archived(ctx context.Context, url string) (bool, error) {
	n, err := s.rdb.Exists(ctx, redisKey(url)).Result()
	if err != nil {
		return false, fmt.Errorf("checking redis archive: %w", err)
	}
	return n > 0, nil
}

// Record only stores successful conversions, failures stay retryable
func (s *RedisStore) Record(ctx context.Context, e Entry) error {
	if e.Status != model.StatusSucceeded {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKey(e.URL), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing redis archive: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
