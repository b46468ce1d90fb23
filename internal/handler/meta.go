package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// Genres lists the genre choices accepted by the venue and artist forms.
func Genres(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"genres": model.Genres})
}

// States lists the accepted state codes in alphabetical order.
func States(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"states": model.SortedStates()})
}
