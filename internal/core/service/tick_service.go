package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

// DedupChecker abstracts the tick idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, symbol string, ts time.Time) (bool, error)
	Mark(ctx context.Context, symbol string, ts time.Time) error
}

type tickService struct {
	instruments ports.InstrumentRepository
	history     ports.PriceHistoryRepository
	dedup       DedupChecker
	cache       QuoteCache
	log         zerolog.Logger
}

// NewTickService returns a TickService implementation.
func NewTickService(
	instruments ports.InstrumentRepository,
	history ports.PriceHistoryRepository,
	dedup DedupChecker,
	cache QuoteCache,
	log zerolog.Logger,
) ports.TickService {
	return &tickService{
		instruments: instruments,
		history:     history,
		dedup:       dedup,
		cache:       cache,
		log:         log,
	}
}

// Process deduplicates and applies a single price observation: the point is
// appended to the instrument's history and becomes its current price. A
// duplicate is skipped and reported as not processed, so callers can count
// dedup hits separately from successes.
func (s *tickService) Process(ctx context.Context, in ports.TickInput) (bool, error) {
	// 1. Idempotency check, duplicates are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.Symbol, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", in.Symbol).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("symbol", in.Symbol).Time("ts", in.Timestamp).Msg("duplicate tick skipped")
		return false, nil
	}

	// 2. Resolve the instrument the tick belongs to.
	instrument, err := s.instruments.FindBySymbol(ctx, in.Symbol)
	if err != nil {
		return false, fmt.Errorf("process tick: %w", err)
	}

	// 3. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.Symbol, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("symbol", in.Symbol).Msg("failed to set dedup key")
	}

	// 4. Append to the history series.
	point := &domain.PricePoint{
		InstrumentID: instrument.ID,
		Price:        in.Price,
		RecordedAt:   in.Timestamp,
	}
	if err := s.history.Insert(ctx, point); err != nil {
		return false, fmt.Errorf("process tick: insert point: %w", err)
	}

	// 5. Promote to current price (non-fatal on failure; history already has the point).
	if err := s.instruments.UpdatePrice(ctx, instrument.ID, in.Price); err != nil {
		s.log.Warn().Err(err).Str("symbol", in.Symbol).Msg("failed to update current price")
	} else if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("quote cache invalidation failed")
		}
	}

	s.log.Info().
		Str("symbol", in.Symbol).
		Float64("price", in.Price).
		Str("source", in.Source).
		Msg("tick processed")

	return true, nil
}
