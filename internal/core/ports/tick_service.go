package ports

import (
	"context"
	"time"
)

// TickInput is the DTO passed from the transport layer to TickService.
type TickInput struct {
	Symbol    string
	Price     float64
	Timestamp time.Time
	Source    string
}

// TickService applies incoming price observations to the tracked instruments.
// Process reports false when the tick was recognized as a duplicate and
// skipped without touching any state.
type TickService interface {
	Process(ctx context.Context, tick TickInput) (bool, error)
}
