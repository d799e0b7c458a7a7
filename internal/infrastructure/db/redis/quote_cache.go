package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/primetradeai/pricetrack/internal/core/domain"
)

const (
	quoteCacheKey = "instruments:all"
	quoteCacheTTL = 30 * time.Second
)

// QuoteCache caches the full instrument list as a single JSON blob. Writers
// invalidate it; ticks invalidate it after a current-price update, so readers
// see fresh quotes within one round trip.
type QuoteCache struct {
	client *redis.Client
}

func NewQuoteCache(client *redis.Client) *QuoteCache {
	return &QuoteCache{client: client}
}

// Get returns the cached list and whether the cache was warm.
func (q *QuoteCache) Get(ctx context.Context) ([]domain.Instrument, bool, error) {
	raw, err := q.client.Get(ctx, quoteCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("quote cache get: %w", err)
	}

	var items []domain.Instrument
	if err := json.Unmarshal(raw, &items); err != nil {
		// Corrupt entry: treat as a miss and let the next Set overwrite it.
		return nil, false, fmt.Errorf("quote cache decode: %w", err)
	}
	return items, true, nil
}

func (q *QuoteCache) Set(ctx context.Context, items []domain.Instrument) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("quote cache encode: %w", err)
	}
	return q.client.Set(ctx, quoteCacheKey, raw, quoteCacheTTL).Err()
}

func (q *QuoteCache) Invalidate(ctx context.Context) error {
	return q.client.Del(ctx, quoteCacheKey).Err()
}
