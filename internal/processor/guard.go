package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard keeps at most one in-flight task per key.
type Guard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type LocalGuard struct {
	keys sync.Map
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{}
}

func (g *LocalGuard) Acquire(_ context.Context, key string) (bool, error) {
	_, loaded := g.keys.LoadOrStore(key, struct{}{})
	return !loaded, nil
}

func (g *LocalGuard) Release(_ context.Context, key string) error {
	g.keys.Delete(key)
	return nil
}

type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisGuard shares the in-flight set between ledger instances. The TTL bounds how
// long a crashed instance can hold a key.
type RedisGuard struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

func NewRedisGuard(client redisClient, ttl time.Duration) *RedisGuard {
	return &RedisGuard{
		client: client,
		prefix: "payledger:inflight:",
		ttl:    ttl,
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
