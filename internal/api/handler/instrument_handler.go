package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primetradeai/pricetrack/internal/api/metrics"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

// InstrumentHandler handles HTTP requests for instrument operations.
// Reads require authentication; writes additionally require the admin role,
// both enforced by the route middleware before these methods run.
type InstrumentHandler struct {
	service ports.InstrumentService
}

func NewInstrumentHandler(service ports.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{service: service}
}

// List handles GET /v1/instruments.
//
// @Summary      List all instruments
// @Tags         instruments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Instrument
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/instruments [get]
func (h *InstrumentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// History handles GET /v1/instruments/:id/history.
//
// @Summary      Get the price history of an instrument
// @Tags         instruments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Instrument ID"
// @Success      200  {array}   domain.PricePoint
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/instruments/{id}/history [get]
func (h *InstrumentHandler) History(c echo.Context) error {
	points, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, points)
}

// Create handles POST /v1/instruments (admin only).
//
// @Summary      Add a new instrument
// @Tags         instruments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      instrumentRequest  true  "Instrument details"
// @Success      201   {object}  domain.Instrument
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/instruments [post]
func (h *InstrumentHandler) Create(c echo.Context) error {
	var req instrumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.InstrumentInput{
		Name:         req.Name,
		Symbol:       req.Symbol,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		return err
	}

	metrics.InstrumentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/instruments/:id (admin only).
//
// @Summary      Update an instrument
// @Tags         instruments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Instrument ID"
// @Param        body  body      instrumentRequest  true  "Instrument details"
// @Success      200   {object}  domain.Instrument
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/instruments/{id} [put]
func (h *InstrumentHandler) Update(c echo.Context) error {
	var req instrumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.InstrumentInput{
		Name:         req.Name,
		Symbol:       req.Symbol,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/instruments/:id (admin only).
//
// @Summary      Delete an instrument and its history
// @Tags         instruments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Instrument ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/instruments/{id} [delete]
func (h *InstrumentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "instrument deleted"})
}
