package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/akarpova/shareit/internal/service"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// The JWT middleware stores the subject claim without a type guarantee, so
// every representation the token library may produce is accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.  Zero is never a valid id.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// queryPage reads the from/size query parameters, defaulting to the first
// page of ten.  A present but non-numeric value reports failure; range
// checks (from >= 0, size > 0) are left to the service layer.
func queryPage(c echo.Context) (from, size int, ok bool) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		from = n
	}
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		size = n
	}
	return from, size, true
}

// writeServiceError translates the service error taxonomy to HTTP.  The
// sentinel decides the status; the wrapped message travels to the client
// unchanged so that the caller learns which precondition failed.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedView),
		errors.Is(err, service.ErrInvalidOperation),
		errors.Is(err, service.ErrInvalidPagination):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
