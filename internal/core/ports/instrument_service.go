package ports

import (
	"context"

	"github.com/primetradeai/pricetrack/internal/core/domain"
)

// InstrumentInput carries the writable fields of an instrument.
type InstrumentInput struct {
	Name         string
	Symbol       string
	CurrentPrice float64
}

// InstrumentService defines use-case operations for instruments.
type InstrumentService interface {
	List(ctx context.Context) ([]domain.Instrument, error)
	History(ctx context.Context, instrumentID string) ([]domain.PricePoint, error)
	Create(ctx context.Context, input InstrumentInput) (*domain.Instrument, error)
	Update(ctx context.Context, instrumentID string, input InstrumentInput) (*domain.Instrument, error)
	Delete(ctx context.Context, instrumentID string) error
}
