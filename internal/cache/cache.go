package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

const keyPrefix = "gcpath:plot:"

// Cache stores rendered plots in Valkey (Redis-compatible).
type Cache struct {
	client valkey.Client
	ttl    time.Duration
}

// New creates a new Valkey cache client.
func New(addr string, ttl time.Duration) (*Cache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// Key derives the cache key of a plot from the encoded path and the render
// settings it was drawn with.
func Key(encodedPath []byte, variant string) string {
	h := sha256.New()
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write(encodedPath)
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a plot by key; ok is false when it is not cached.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	if err := cmd.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	b, err := cmd.AsBytes()
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores a plot with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	cmd := c.client.Do(ctx,
		c.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Ex(c.ttl).Build(),
	)
	return cmd.Error()
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
