package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

// SimulationHandler exposes the progression engine: manual advances, the
// watchlist driving the periodic ticker and the derived journey data.
type SimulationHandler struct {
	service ports.ShipmentService
	cities  []domain.City
}

// NewSimulationHandler creates a SimulationHandler. cities is the reference
// hub table served on /v1/cities.
func NewSimulationHandler(service ports.ShipmentService, cities []domain.City) *SimulationHandler {
	return &SimulationHandler{service: service, cities: cities}
}

// Advance handles POST /v1/shipments/:tracking_id/advance.
//
// @Summary      Generate the next tracking event
// @Description  Delivered shipments are returned unchanged with advanced=false.
// @Tags         simulation
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id"
// @Success      200          {object}  advanceResponse
// @Failure      404          {object}  errorResponse
// @Failure      409          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/advance [post]
func (h *SimulationHandler) Advance(c echo.Context) error {
	id, err := trackingIDParam(c)
	if err != nil {
		return err
	}

	result, err := h.service.AdvanceShipment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdvanceResponse(result))
}

// Watch handles PUT /v1/shipments/:tracking_id/watch.
//
// @Summary      Start simulating a shipment
// @Tags         simulation
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id"
// @Success      200          {object}  watchResponse
// @Failure      404          {object}  errorResponse
// @Failure      409          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/watch [put]
func (h *SimulationHandler) Watch(c echo.Context) error {
	id, err := trackingIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Watch(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, watchResponse{TrackingID: domain.NormalizeTrackingID(id), Watching: true})
}

// Unwatch handles DELETE /v1/shipments/:tracking_id/watch.
//
// @Summary      Stop simulating a shipment
// @Tags         simulation
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id"
// @Success      200          {object}  watchResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/watch [delete]
func (h *SimulationHandler) Unwatch(c echo.Context) error {
	id, err := trackingIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Unwatch(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, watchResponse{TrackingID: domain.NormalizeTrackingID(id), Watching: false})
}

// Journey handles GET /v1/shipments/:tracking_id/journey.
//
// @Summary      Hubs visited by a shipment, oldest first
// @Tags         simulation
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id"
// @Success      200          {object}  journeyResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/journey [get]
func (h *SimulationHandler) Journey(c echo.Context) error {
	id, err := trackingIDParam(c)
	if err != nil {
		return err
	}
	cities, err := h.service.JourneyPath(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, journeyResponse{
		TrackingID: domain.NormalizeTrackingID(id),
		Cities:     toCityResponses(cities),
	})
}

// Notifications handles GET /v1/shipments/:tracking_id/notifications.
//
// @Summary      Status-change notifications, newest first
// @Tags         simulation
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id"
// @Success      200          {object}  notificationsResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id}/notifications [get]
func (h *SimulationHandler) Notifications(c echo.Context) error {
	id, err := trackingIDParam(c)
	if err != nil {
		return err
	}
	list, err := h.service.Notifications(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{
		TrackingID: domain.NormalizeTrackingID(id),
		Data:       toNotificationResponses(list),
	})
}

// Cities handles GET /v1/cities.
//
// @Summary      Reference hub cities
// @Tags         simulation
// @Produce      json
// @Success      200  {array}  cityResponse
// @Router       /v1/cities [get]
func (h *SimulationHandler) Cities(c echo.Context) error {
	return c.JSON(http.StatusOK, toCityResponses(h.cities))
}
