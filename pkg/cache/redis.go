package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type options func(h *Handle)

// Handle is the Redis-backed Cache implementation.
type Handle struct {
	db             int
	ttl            time.Duration
	addrs          []string
	userCredential string
	passCredential string
	client         redis.UniversalClient
}

var (
	ErrKeyNotFound = fmt.Errorf("key not found")
	ErrAddrMissing = fmt.Errorf("redis addresses must be specified")
)

// WithTTL sets an optional Time To Live for cached entries. Entries without
// a TTL live until explicit invalidation.
func WithTTL(ttl time.Duration) options {
	return func(h *Handle) {
		h.ttl = ttl
	}
}

func WithAddr(addrs string) options {
	return func(h *Handle) {
		h.addrs = strings.Split(addrs, ",")
	}
}

// WithAddrs sets the server addresses from an already-split list.
func WithAddrs(addrs []string) options {
	return func(h *Handle) {
		if len(addrs) > 0 {
			h.addrs = addrs
		}
	}
}

func WithUserCredential(credential string) options {
	return func(h *Handle) {
		h.userCredential = credential
	}
}

func WithPassCredential(credential string) options {
	return func(h *Handle) {
		h.passCredential = credential
	}
}

func WithDatabase(db int) options {
	return func(h *Handle) {
		h.db = db
	}
}

// New creates a new Redis-backed cache
func New(opts ...options) (Cache, error) {
	h := &Handle{}

	for _, opt := range opts {
		opt(h)
	}

	if h.addrs == nil {
		return nil, ErrAddrMissing
	}

	h.client = redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    h.addrs,
		Username: h.userCredential,
		Password: h.passCredential,
		DB:       h.db,
	})

	return h, nil
}

// Ping returns the Redis server liveliness response
func (h *Handle) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

// Close closes the server connection
func (h *Handle) Close() error {
	return h.client.Close()
}

// Get returns the value associated with the key, or ErrKeyNotFound.
func (h *Handle) Get(ctx context.Context, key string) ([]byte, error) {
	redisCmd := h.client.Get(ctx, key)
	switch {
	case errors.Is(redisCmd.Err(), redis.Nil):
		return nil, ErrKeyNotFound
	case redisCmd.Err() != nil:
		return nil, redisCmd.Err()
	}
	return redisCmd.Bytes()
}

// Set stores value under key, overwriting any previous value.
func (h *Handle) Set(ctx context.Context, key string, value []byte) error {
	return h.client.Set(ctx, key, value, h.ttl).Err()
}

// DelPrefix removes every key sharing the given prefix using SCAN + DEL, so
// a large keyspace is walked incrementally instead of with a blocking KEYS.
func (h *Handle) DelPrefix(ctx context.Context, prefix string) error {
	iter := h.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return h.client.Del(ctx, keys...).Err()
}
