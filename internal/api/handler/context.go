package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// trackingIDParam reads the :tracking_id path parameter and fails fast with
// 400 when it is blank.
func trackingIDParam(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("tracking_id"))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "tracking_id is required")
	}
	return id, nil
}
