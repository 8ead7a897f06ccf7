package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment records.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /v1/shipments.
//
// @Summary      Create a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rec, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, linksFor(rec.ID).Self)
	return c.JSON(http.StatusCreated, toShipmentResponse(rec))
}

// Get handles GET /v1/shipments/:tracking_id.
//
// @Summary      Get a shipment by tracking id
// @Description  Lookup is case-insensitive. History is newest first.
// @Tags         shipments
// @Produce      json
// @Param        tracking_id  path      string  true  "Tracking id (e.g. IT123456789)"
// @Success      200          {object}  shipmentResponse
// @Failure      404          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /v1/shipments/{tracking_id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	id, err := trackingIDParam(c)
	if err != nil {
		return err
	}

	rec, err := h.service.GetShipment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(rec))
}

// List handles GET /v1/shipments.
//
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Param        stage   query     string  false  "Filter by stage (e.g. out_for_delivery)"
// @Param        active  query     bool    false  "Only shipments that are not delivered"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  listShipmentsResponse
// @Failure      400     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	var q listShipmentsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.ListShipments(c.Request().Context(), ports.ListShipmentsInput{
		Stage:      q.Stage,
		ActiveOnly: q.Active,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}
