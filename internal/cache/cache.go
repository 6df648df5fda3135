// Package cache stores rendered show views. Entries are keyed by a store
// generation that every successful write bumps, so a write invalidates
// every cached view at once without tracking which views it touched.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agenthands/playbill/internal/logger"
)

const (
	generationKey = "playbill:generation"
	keyPrefix     = "playbill:show"

	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// Slot is the generation-qualified key a Get resolved. Setting a value
// into it after the generation moved on stores it where no Get will look.
// The zero Slot stores nothing.
type Slot string

type Cache interface {
	// Get returns the cached value, whether it was present, and the slot a
	// freshly rendered value for key belongs in.
	Get(ctx context.Context, key string) ([]byte, Slot, bool)
	Set(ctx context.Context, slot Slot, value []byte)
	// Bump invalidates every entry.
	Bump(ctx context.Context) error
}

// Key names the show view of one node.
func Key(kind, uuid string) string {
	return kind + ":" + uuid
}

type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, Slot, bool) { return nil, "", false }
func (Nop) Set(context.Context, Slot, []byte)              {}
func (Nop) Bump(context.Context) error                     { return nil }

// Redis is a Cache on a redis server. Read and write failures are logged
// and treated as misses. After a failed Bump the cache is bypassed until a
// later Bump succeeds.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
	stale  atomic.Bool
}

func NewRedis(client *redis.Client, ttl time.Duration, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: client, ttl: ttl, log: log.With("component", "cache")}
}

// Connect parses url, pings the server and returns the client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return client, nil
}

func (r *Redis) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, Slot, bool) {
	if r.stale.Load() {
		if err := r.Bump(ctx); err != nil {
			return nil, "", false
		}
	}
	gen, err := r.generation(ctx)
	if err != nil {
		r.log.Warn("cache generation read failed", "error", err)
		return nil, "", false
	}
	slot := Slot(fmt.Sprintf("%s:%d:%s", keyPrefix, gen, key))
	data, err := r.client.Get(ctx, string(slot)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache read failed", "key", slot, "error", err)
		}
		return nil, slot, false
	}
	return data, slot, true
}

func (r *Redis) Set(ctx context.Context, slot Slot, value []byte) {
	if slot == "" || r.stale.Load() {
		return
	}
	if err := r.client.Set(ctx, string(slot), value, r.ttl).Err(); err != nil {
		r.log.Warn("cache write failed", "key", slot, "error", err)
	}
}

func (r *Redis) Bump(ctx context.Context) error {
	if err := r.client.Incr(ctx, generationKey).Err(); err != nil {
		r.stale.Store(true)
		return fmt.Errorf("redis: invalidation failed: %w", err)
	}
	r.stale.Store(false)
	return nil
}
