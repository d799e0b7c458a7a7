package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// TickDedup provides idempotency checks for price ticks backed by Redis.
// Key format: tick:<symbol>:<unix_timestamp>
type TickDedup struct {
	client *redis.Client
}

// NewTickDedup creates a TickDedup wrapping the given Redis client.
func NewTickDedup(client *redis.Client) *TickDedup {
	return &TickDedup{client: client}
}

// IsDuplicate reports whether this exact tick has already been processed.
func (d *TickDedup) IsDuplicate(ctx context.Context, symbol string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(symbol, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this tick has been processed (expires after dedupTTL).
func (d *TickDedup) Mark(ctx context.Context, symbol string, ts time.Time) error {
	return d.client.Set(ctx, d.key(symbol, ts), "1", dedupTTL).Err()
}

func (d *TickDedup) key(symbol string, ts time.Time) string {
	return fmt.Sprintf("tick:%s:%d", symbol, ts.Unix())
}
