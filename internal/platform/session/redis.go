// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aanchalalytcs/showcase/internal/platform/constants"
)

// RedisBackend stores session scopes in Redis so snapshots survive restarts
// and can be shared by several API replicas.
type RedisBackend struct {
	client  *redis.Client
	idleTTL time.Duration
}

// NewRedisBackend returns a backend whose keys expire after idleTTL without writes.
// A zero idleTTL keeps keys until the session is ended explicitly.
func NewRedisBackend(client *redis.Client, idleTTL time.Duration) *RedisBackend {
	return &RedisBackend{client: client, idleTTL: idleTTL}
}

func (b *RedisBackend) Open(sessionID string) Scoped {
	return &Redis{
		client: b.client,
		prefix: constants.RedisPrefixSession + sessionID + ":",
		ttl:    b.idleTTL,
	}
}

// Redis is the [Scoped] storage of one session.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (r *Redis) key(name string) string { return r.prefix + "kv:" + name }
func (r *Redis) index() string          { return r.prefix + "keys" }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session: redis get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), value, r.ttl)
	pipe.SAdd(ctx, r.index(), key)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.index(), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, key string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(key))
	pipe.SRem(ctx, r.index(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: redis clear %q: %w", key, err)
	}
	return nil
}

func (r *Redis) ClearAll(ctx context.Context) error {
	names, err := r.client.SMembers(ctx, r.index()).Result()
	if err != nil {
		return fmt.Errorf("session: redis list keys: %w", err)
	}

	keys := make([]string, 0, len(names)+1)
	for _, name := range names {
		keys = append(keys, r.key(name))
	}
	keys = append(keys, r.index())

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session: redis clear all: %w", err)
	}
	return nil
}
