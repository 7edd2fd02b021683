// Package handler implements the Echo HTTP handlers of the booking API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/schedule"
)

// dbTimeout bounds every store call made by a handler.
const dbTimeout = 5 * time.Second

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// fail maps an error onto the API's JSON error shape.  Validation errors
// become 400, missing resources 404, overlaps 409; anything else is logged
// and reported as a generic 500.
func fail(c echo.Context, log *zap.Logger, err error) error {
	var ve *schedule.ValidationError
	var ce *schedule.ConflictError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.As(err, &ce):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "Time slot overlaps with existing block",
			"overlaps": ce.With,
		})
	case errors.Is(err, schedule.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
