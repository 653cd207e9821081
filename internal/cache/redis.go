package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusmatch/backend/internal/config"
)

// TTL for the approved-institutions listing. The list changes only through
// admin approve/reject actions, which also invalidate the key.
const institutionListTTL = 5 * time.Minute

const keyApprovedInstitutions = "institutions:approved"

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// GetApprovedInstitutions returns the cached listing as raw JSON.
// A cache miss returns ("", nil).
func (c *RedisCache) GetApprovedInstitutions(ctx context.Context) (string, error) {
	val, err := c.Client.Get(ctx, keyApprovedInstitutions).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	} else if err != nil {
		return "", err
	}
	return val, nil
}

// SetApprovedInstitutions stores the listing as raw JSON with a fresh TTL.
func (c *RedisCache) SetApprovedInstitutions(ctx context.Context, payload string) error {
	return c.Client.Set(ctx, keyApprovedInstitutions, payload, institutionListTTL).Err()
}

// InvalidateApprovedInstitutions drops the cached listing. Called after an
// institution is approved or rejected.
func (c *RedisCache) InvalidateApprovedInstitutions(ctx context.Context) error {
	return c.Client.Del(ctx, keyApprovedInstitutions).Err()
}
