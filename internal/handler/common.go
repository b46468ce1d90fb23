// Package handler exposes the HTTP handlers of the booking directory.
// Handlers bind and parse the request, call the service and map its typed
// errors onto status codes; they never touch the store directly.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// parseID reads the :id path parameter.  Ids are positive integers.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_body"})
}

// writeError maps a service error onto a JSON response.  Causes are logged
// by the service and never echoed to the client.
func writeError(c echo.Context, err error) error {
	switch {
	case service.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_failed", "fields": service.FieldErrors(err)})
	case service.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
	case service.IsPersistence(err):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "persistence_error"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error"})
	}
}

// searchForm carries the free-text search term from the query string or
// the request body.
type searchForm struct {
	SearchTerm string `json:"search_term" form:"search_term" query:"search_term"`
}

func bindSearchTerm(c echo.Context) (string, error) {
	var f searchForm
	if err := c.Bind(&f); err != nil {
		return "", err
	}
	if f.SearchTerm == "" {
		f.SearchTerm = c.QueryParam("search_term")
	}
	return f.SearchTerm, nil
}
