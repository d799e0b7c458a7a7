package domain

import (
	"errors"
	"time"
)

var ErrInstrumentNotFound = errors.New("instrument not found")
var ErrInstrumentExists = errors.New("instrument already exists")

// Instrument is a tradable asset whose price the system tracks.
type Instrument struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Symbol       string    `json:"symbol" bson:"symbol"`
	CurrentPrice float64   `json:"current_price" bson:"current_price"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// PricePoint is a single observation in an instrument's history series.
type PricePoint struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	InstrumentID string    `json:"instrument_id" bson:"instrument_id"`
	Price        float64   `json:"price" bson:"price"`
	RecordedAt   time.Time `json:"recorded_at" bson:"recorded_at"`
}

// Tick is a price observation received from an external feed.
type Tick struct {
	Symbol    string
	Price     float64
	Timestamp time.Time
	Source    string
}
