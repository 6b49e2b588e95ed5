package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedValue = "1"

// Store keeps revoked token IDs and cached breach ranges in redis.
type Store struct {
	client *redis.Client
	prefix string
}

func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{client: client, prefix: "windkey:"}, nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Revoke uses SET NX, so only the first caller gets true.
func (s *Store) Revoke(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	ok, err := s.client.SetNX(ctx, s.key(id), revokedValue, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("revoke: %w", err)
	}
	return ok, nil
}

func (s *Store) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	k := s.key(key)
	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("incr: %w", err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, k, ttl).Err(); err != nil {
			return n, fmt.Errorf("expire: %w", err)
		}
	}
	return n, nil
}

func (s *Store) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
