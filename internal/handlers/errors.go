package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/birdie/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error onto the status clients expect. Unexpected
// errors surface their raw message as a 500.
func httpError(err error) *echo.HTTPError {
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}
	switch services.KindOf(err) {
	case services.KindValidation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case services.KindUnauthorized, services.KindForbidden:
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case services.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case services.KindConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

func parseID(c echo.Context, msg string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msg)
	}
	return uint(id), nil
}
