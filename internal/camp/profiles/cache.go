package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultCacheTTL = time.Hour
	cacheKeyPrefix  = "camp-profile::"
)

var errCacheMiss = errors.New("profile cache miss")

// RedisCache keeps serialized profiles in redis, keyed by profile id.
type RedisCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisCache(redisClient *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("%s%d", cacheKeyPrefix, id)
}

func (c *RedisCache) Get(ctx context.Context, id int) (*Profile, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.profiles.get")
	defer span.End()

	val, err := c.redisClient.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("profile.from-cache", false))
		return nil, errCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal(val, profile); err != nil {
		return nil, fmt.Errorf("unmarshal cached profile: %w", err)
	}
	span.SetAttributes(attribute.Bool("profile.from-cache", true))
	return profile, nil
}

func (c *RedisCache) Set(ctx context.Context, profile *Profile) error {
	profileJson, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.redisClient.Set(ctx, cacheKey(profile.ID), profileJson, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, id int) error {
	return c.redisClient.Del(ctx, cacheKey(id)).Err()
}

// NoopCache is used when redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, int) (*Profile, error) { return nil, errCacheMiss }
func (NoopCache) Set(context.Context, *Profile) error        { return nil }
func (NoopCache) Invalidate(context.Context, int) error      { return nil }
