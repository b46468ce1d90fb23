package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// ShowHandler serves the /v1/shows routes.
type ShowHandler struct {
	Dir *service.Directory
}

// NewShowHandler constructs a ShowHandler and panics if dir is nil.
func NewShowHandler(dir *service.Directory) *ShowHandler {
	if dir == nil {
		panic("nil directory passed to NewShowHandler")
	}
	return &ShowHandler{Dir: dir}
}

// List returns every show as {"shows": [...]} ordered by start time.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Dir.ListShows(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// Get returns a single show.
func (h *ShowHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	s, err := h.Dir.GetShow(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Create books a show and answers 201 {"id": n}.
func (h *ShowHandler) Create(c echo.Context) error {
	var in service.ShowInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.Dir.CreateShow(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
