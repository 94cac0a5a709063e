package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by RedisStore.
const DefaultKeyPrefix = "formval:"

// RedisStore implements Store on top of a go-redis client.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig configures ConnectRedis.
type RedisConfig struct {
	// Client is an existing client. When set the connection fields are
	// ignored.
	Client redis.UniversalClient

	Address  string
	Password string
	DB       int

	// KeyPrefix defaults to DefaultKeyPrefix.
	KeyPrefix string
	// TTL expires stored values. Zero keeps them until cleared.
	TTL time.Duration

	// DialTimeout defaults to 5 seconds.
	DialTimeout time.Duration
}

// NewRedisStore wraps an existing client without pinging it.
func NewRedisStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// ConnectRedis builds a client from cfg and verifies it with PING.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := cfg.Client
	if client == nil {
		if cfg.Address == "" {
			return nil, errors.New("persist: redis address required")
		}
		dial := cfg.DialTimeout
		if dial <= 0 {
			dial = 5 * time.Second
		}
		client = redis.NewClient(&redis.Options{
			Addr:        cfg.Address,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: dial,
		})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("persist: redis ping: %w", err)
	}
	return NewRedisStore(client, cfg.KeyPrefix, cfg.TTL), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("persist: redis get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("persist: redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("persist: redis delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
