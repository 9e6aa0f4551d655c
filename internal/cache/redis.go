package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

const keyPrefix = "amzpulse:product:"

const defaultTTL = 15 * time.Minute

// Redis caches product payloads in a Redis instance as JSON blobs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a Redis cache.
type RedisOption func(*Redis)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis connects to the Redis instance at addr and verifies the
// connection with a ping.
func NewRedis(ctx context.Context, addr, password string, db int, opts ...RedisOption) (*Redis, error) {
	r := &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: defaultTTL,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return r, nil
}

func (r *Redis) GetProduct(ctx context.Context, asin string) (*domain.Product, error) {
	raw, err := r.client.Get(ctx, keyPrefix+asin).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("reading cached product %s: %w", asin, err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decoding cached product %s: %w", asin, err)
	}
	return &p, nil
}

func (r *Redis) SetProduct(ctx context.Context, p *domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding product %s: %w", p.ASIN, err)
	}
	if err := r.client.Set(ctx, keyPrefix+p.ASIN, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("caching product %s: %w", p.ASIN, err)
	}
	return nil
}

func (r *Redis) DeleteProduct(ctx context.Context, asin string) error {
	if err := r.client.Del(ctx, keyPrefix+asin).Err(); err != nil {
		return fmt.Errorf("evicting product %s: %w", asin, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
