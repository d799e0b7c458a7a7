package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

// QuoteCache abstracts the instrument list cache (Redis).
type QuoteCache interface {
	Get(ctx context.Context) ([]domain.Instrument, bool, error)
	Set(ctx context.Context, items []domain.Instrument) error
	Invalidate(ctx context.Context) error
}

type InstrumentService struct {
	repo    ports.InstrumentRepository
	history ports.PriceHistoryRepository
	cache   QuoteCache
	logger  zerolog.Logger
}

func NewInstrumentService(
	repo ports.InstrumentRepository,
	history ports.PriceHistoryRepository,
	cache QuoteCache,
	logger zerolog.Logger,
) *InstrumentService {
	return &InstrumentService{repo: repo, history: history, cache: cache, logger: logger}
}

// List returns all instruments, served from the quote cache when warm.
// Cache failures are logged and fall through to the repository.
func (s *InstrumentService) List(ctx context.Context) ([]domain.Instrument, error) {
	if s.cache != nil {
		items, hit, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("quote cache read failed")
		} else if hit {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, items); err != nil {
			s.logger.Warn().Err(err).Msg("quote cache write failed")
		}
	}
	return items, nil
}

// History returns the price series for an instrument, oldest first.
func (s *InstrumentService) History(ctx context.Context, instrumentID string) ([]domain.PricePoint, error) {
	if _, err := s.repo.FindByID(ctx, instrumentID); err != nil {
		return nil, err
	}
	return s.history.ListByInstrument(ctx, instrumentID)
}

func (s *InstrumentService) Create(ctx context.Context, input ports.InstrumentInput) (*domain.Instrument, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Instrument{
		Name:         input.Name,
		Symbol:       input.Symbol,
		CurrentPrice: input.CurrentPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("symbol", created.Symbol).Str("id", created.ID).Msg("instrument created")
	return created, nil
}

func (s *InstrumentService) Update(ctx context.Context, instrumentID string, input ports.InstrumentInput) (*domain.Instrument, error) {
	updated, err := s.repo.Update(ctx, &domain.Instrument{
		ID:           instrumentID,
		Name:         input.Name,
		Symbol:       input.Symbol,
		CurrentPrice: input.CurrentPrice,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the instrument and its history series.
func (s *InstrumentService) Delete(ctx context.Context, instrumentID string) error {
	if err := s.repo.Delete(ctx, instrumentID); err != nil {
		return err
	}
	if err := s.history.DeleteByInstrument(ctx, instrumentID); err != nil {
		s.logger.Warn().Err(err).Str("id", instrumentID).Msg("failed to delete price history")
	}

	s.invalidate(ctx)
	return nil
}

func (s *InstrumentService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("quote cache invalidation failed")
	}
}
