package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/drivehub/rental-backend/internal/config"
)

// CacheService is a JSON cache over Redis for read-heavy reference data
// such as the city list. Caching is best-effort: when disabled or when
// Redis is unreachable every call degrades to a miss and the server
// runs DB-only.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewCacheService creates a cache service. A nil client is returned
// inside the service when caching is disabled.
func NewCacheService(cfg config.RedisConfig, logger *logrus.Logger) *CacheService {
	if !cfg.Enabled {
		return &CacheService{logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unreachable, running without cache")
		return &CacheService{logger: logger}
	}

	return &CacheService{client: client, ttl: cfg.TTL, logger: logger}
}

// Enabled reports whether a Redis client is connected
func (s *CacheService) Enabled() bool {
	return s.client != nil
}

// Get loads a cached value into dest, reporting whether it was found
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if s.client == nil {
		return false
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache entry corrupt, ignoring")
		return false
	}

	return true
}

// Set stores a value under key for the configured TTL
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if s.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache marshal failed")
		return
	}

	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// Invalidate removes keys, typically after a write to the cached data
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if s.client == nil || len(keys) == 0 {
		return
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.WithError(err).Warn("Cache invalidation failed")
	}
}

// Close releases the Redis connection
func (s *CacheService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
