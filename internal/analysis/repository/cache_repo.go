package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/redis/go-redis/v9"
)

const (
	outputKeyPrefix  = "camel:out:"   // Key prefix for cached outputs: camel:out:{namespace}:{op}:{sha256(text)}
	defaultNamespace = "default"      // Namespace when none is configured
	defaultTTL       = 24 * time.Hour // TTL when none is configured
)

// ResultCache stores successful analysis outputs.
type ResultCache interface {
	Get(ctx context.Context, op domain.Operation, text string) (json.RawMessage, bool, error)
	Set(ctx context.Context, op domain.Operation, text string, output json.RawMessage) error
}

// RedisResultCache handles Redis operations for cached outputs
type RedisResultCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisResultCache creates a new RedisResultCache. namespace identifies
// the models that produce the outputs; caches with different namespaces
// never see each other's entries on a shared Redis.
func NewRedisResultCache(client *redis.Client, namespace string, ttl time.Duration) *RedisResultCache {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisResultCache{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

// Get returns the cached output for (op, text). A miss is not an error.
func (r *RedisResultCache) Get(ctx context.Context, op domain.Operation, text string) (json.RawMessage, bool, error) {
	data, err := r.client.Get(ctx, r.outputKey(op, text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached output: %w", err)
	}

	if !json.Valid(data) {
		return nil, false, fmt.Errorf("cached output for %s is not valid JSON", op)
	}

	return json.RawMessage(data), true, nil
}

// Set stores output for (op, text) with the configured TTL.
func (r *RedisResultCache) Set(ctx context.Context, op domain.Operation, text string, output json.RawMessage) error {
	if err := r.client.Set(ctx, r.outputKey(op, text), []byte(output), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache output: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisResultCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Namespace returns the key namespace of this cache.
func (r *RedisResultCache) Namespace() string {
	return r.namespace
}

// TTL returns the expiry applied to new entries.
func (r *RedisResultCache) TTL() time.Duration {
	return r.ttl
}

func (r *RedisResultCache) outputKey(op domain.Operation, text string) string {
	sum := sha256.Sum256([]byte(text))
	return outputKeyPrefix + r.namespace + ":" + string(op) + ":" + hex.EncodeToString(sum[:])
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, domain.Operation, string) (json.RawMessage, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(context.Context, domain.Operation, string, json.RawMessage) error {
	return nil
}
