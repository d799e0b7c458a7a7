package ports

import (
	"context"

	"github.com/primetradeai/pricetrack/internal/core/domain"
)

// InstrumentRepository defines persistence operations for instruments.
type InstrumentRepository interface {
	Create(ctx context.Context, in *domain.Instrument) (*domain.Instrument, error)
	FindByID(ctx context.Context, id string) (*domain.Instrument, error)
	FindBySymbol(ctx context.Context, symbol string) (*domain.Instrument, error)
	// List returns all instruments sorted by name.
	List(ctx context.Context) ([]domain.Instrument, error)
	Update(ctx context.Context, in *domain.Instrument) (*domain.Instrument, error)
	// UpdatePrice sets current_price without touching the other fields.
	UpdatePrice(ctx context.Context, id string, price float64) error
	Delete(ctx context.Context, id string) error
}

// PriceHistoryRepository handles the per-instrument history series.
type PriceHistoryRepository interface {
	Insert(ctx context.Context, p *domain.PricePoint) error
	// ListByInstrument returns points sorted by recorded_at ascending.
	ListByInstrument(ctx context.Context, instrumentID string) ([]domain.PricePoint, error)
	DeleteByInstrument(ctx context.Context, instrumentID string) error
}
