package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/planfirst/strips/logic"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// KeyPrefix namespaces every key written by this store.
	// Default: "strips".
	KeyPrefix string

	// TTL is the expiry applied to stored records; zero keeps them forever.
	TTL time.Duration

	// ConnectTimeout is the maximum time to wait for connection
	// establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store and verifies connectivity
// with a ping before returning.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "strips"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, prefix: opts.KeyPrefix, ttl: opts.TTL}, nil
}

// SavePlan stores a plan record as JSON under <prefix>:plan:<key>.
func (s *RedisStore) SavePlan(ctx context.Context, key string, rec PlanRecord) error {
	if key == "" {
		return ErrInvalidKey
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal plan: %v", ErrStorageFailed, err)
	}
	if err := s.client.Set(ctx, s.planKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	return nil
}

// LoadPlan retrieves a plan record.
func (s *RedisStore) LoadPlan(ctx context.Context, key string) (*PlanRecord, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	data, err := s.client.Get(ctx, s.planKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	var rec PlanRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal plan: %v", ErrStorageFailed, err)
	}
	return &rec, nil
}

// SaveFacts stores a fact set as a JSON list of canonical strings under
// <prefix>:facts:<key>.
func (s *RedisStore) SaveFacts(ctx context.Context, key string, facts []logic.Term) error {
	if key == "" {
		return ErrInvalidKey
	}
	data, err := json.Marshal(factStrings(facts))
	if err != nil {
		return fmt.Errorf("%w: marshal facts: %v", ErrStorageFailed, err)
	}
	if err := s.client.Set(ctx, s.factsKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	return nil
}

// LoadFacts retrieves a fact set.
func (s *RedisStore) LoadFacts(ctx context.Context, key string) ([]logic.Term, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	data, err := s.client.Get(ctx, s.factsKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: unmarshal facts: %v", ErrStorageFailed, err)
	}
	return parseFacts(raw)
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) planKey(key string) string  { return s.prefix + ":plan:" + key }
func (s *RedisStore) factsKey(key string) string { return s.prefix + ":facts:" + key }
