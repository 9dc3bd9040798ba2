package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/afya-yetu/casework-gateway/internal/core/domain"
)

const sessionKey = "afya:gateway:session"

// RedisStore persists the session record in Redis so multiple gateway
// replicas share one signed-in identity.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr, DB: db}),
	}
}

func (s *RedisStore) Load(ctx context.Context) (*domain.SessionRecord, error) {
	data, err := s.rdb.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session redis get: %w", err)
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec domain.SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session redis encode: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("session redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("session redis del: %w", err)
	}
	return nil
}

// Ping verifies connectivity for the readiness probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
