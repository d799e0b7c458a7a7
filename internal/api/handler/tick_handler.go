package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primetradeai/pricetrack/internal/core/ports"
)

// TickDispatcher is the interface the handler uses to enqueue ticks.
type TickDispatcher interface {
	Enqueue(tick ports.TickInput)
	EnqueueBatch(ticks []ports.TickInput)
}

// TickHandler handles price tick ingestion.
type TickHandler struct {
	dispatcher TickDispatcher
}

// NewTickHandler creates a TickHandler backed by the given dispatcher.
func NewTickHandler(dispatcher TickDispatcher) *TickHandler {
	return &TickHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/ticks. The tick is enqueued for async processing
// and the request answers 202.
//
// @Summary      Ingest a single price tick
// @Tags         ticks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tickRequest  true  "Price tick"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/ticks [post]
func (h *TickHandler) Receive(c echo.Context) error {
	var req tickRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toTickInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "tick accepted"})
}

// ReceiveBatch handles POST /v1/ticks/batch. The whole batch is validated
// before any tick is enqueued.
//
// @Summary      Ingest a batch of price ticks
// @Tags         ticks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []tickRequest  true  "Array of price ticks"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/ticks/batch [post]
func (h *TickHandler) ReceiveBatch(c echo.Context) error {
	var reqs []tickRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.TickInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("tick[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toTickInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "ticks accepted",
		Count:   len(inputs),
	})
}

// toTickInput maps the HTTP request to the service DTO.
func toTickInput(r tickRequest) ports.TickInput {
	return ports.TickInput{
		Symbol:    r.Symbol,
		Price:     r.Price,
		Timestamp: r.Timestamp,
		Source:    r.Source,
	}
}
