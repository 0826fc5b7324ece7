package infra

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV implementa domain.ExpiringKV sobre redis.
//
// O SetIfAbsent usa SET NX, que é test-and-set atômico no servidor:
// entre requisições concorrentes, exatamente uma grava a chave ausente.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

type RedisKVOption func(*RedisKV)

func WithKVPrefix(prefix string) RedisKVOption {
	return func(s *RedisKV) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisKV(rdb *redis.Client, opts ...RedisKVOption) *RedisKV {
	s := &RedisKV{rdb: rdb}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisKV) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	// ttl=0 no go-redis significa sem expiração, igual ao contrato
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *RedisKV) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.SetNX(ctx, s.key(key), value, ttl).Result()
}
