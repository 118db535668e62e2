package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "astro:report:"

// RedisStore shares reports between server replicas. Expiry is delegated to
// redis key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, opts *redis.Options, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) key(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	// A zero expiration means the key never expires.
	if err := s.client.Set(ctx, s.key(sessionID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*models.Profile, error) {
	b, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
