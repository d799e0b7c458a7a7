package handler

import "time"

type tickRequest struct {
	Symbol    string    `json:"symbol"    validate:"required"`
	Price     float64   `json:"price"     validate:"required,gt=0"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Source    string    `json:"source"    validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
