package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sommystore/storefront/config"
)

const redisPrefix = "storefront:"

// Redis is a Driver for clients that share one state across hosts (kiosk
// installs pointing at the same Redis). Connection is verified at open.
type Redis struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedis() (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store/redis: ping: %w", err)
	}

	return &Redis{rdb: rdb, ctx: ctx}, nil
}

func (r *Redis) Get(key string) ([]byte, bool) {
	raw, err := r.rdb.Get(r.ctx, redisPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (r *Redis) Set(key string, raw []byte) error {
	// No TTL: client state lives until explicitly removed.
	return r.rdb.Set(r.ctx, redisPrefix+key, raw, 0).Err()
}

func (r *Redis) Remove(key string) error {
	return r.rdb.Del(r.ctx, redisPrefix+key).Err()
}
