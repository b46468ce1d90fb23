package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// VenueHandler serves the /v1/venues routes.
type VenueHandler struct {
	Dir *service.Directory
}

// NewVenueHandler constructs a VenueHandler and panics if dir is nil.
func NewVenueHandler(dir *service.Directory) *VenueHandler {
	if dir == nil {
		panic("nil directory passed to NewVenueHandler")
	}
	return &VenueHandler{Dir: dir}
}

// List returns venues grouped by city and state as {"areas": [...]}.
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.Dir.ListVenuesByLocation(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// Search matches venue names against search_term.
func (h *VenueHandler) Search(c echo.Context) error {
	term, err := bindSearchTerm(c)
	if err != nil {
		return invalidBody(c)
	}
	res, err := h.Dir.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "count": res.Count, "results": res.Results})
}

// Show returns one venue with its past and upcoming shows.
func (h *VenueHandler) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	detail, err := h.Dir.GetVenueDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Edit returns the stored venue to prefill the edit form.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	v, err := h.Dir.GetVenue(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Create stores a new venue and answers 201 {"id": n}.
func (h *VenueHandler) Create(c echo.Context) error {
	var in service.VenueInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.Dir.CreateVenue(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update rewrites every field of the venue.
func (h *VenueHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var in service.VenueInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.Dir.UpdateVenue(c.Request().Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Delete removes the venue and its shows.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.Dir.DeleteVenue(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
