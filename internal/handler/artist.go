package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/service"
)

// ArtistHandler serves the /v1/artists routes.
type ArtistHandler struct {
	Dir *service.Directory
}

// NewArtistHandler constructs an ArtistHandler and panics if dir is nil.
func NewArtistHandler(dir *service.Directory) *ArtistHandler {
	if dir == nil {
		panic("nil directory passed to NewArtistHandler")
	}
	return &ArtistHandler{Dir: dir}
}

// List returns the artist index as {"artists": [{id, name}]}.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Dir.ListArtists(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// Search matches artist names against search_term.
func (h *ArtistHandler) Search(c echo.Context) error {
	term, err := bindSearchTerm(c)
	if err != nil {
		return invalidBody(c)
	}
	res, err := h.Dir.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "count": res.Count, "results": res.Results})
}

// Show returns one artist with its past and upcoming shows.
func (h *ArtistHandler) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	detail, err := h.Dir.GetArtistDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Edit returns the stored artist to prefill the edit form.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	v, err := h.Dir.GetArtist(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Create stores a new artist and answers 201 {"id": n}.
func (h *ArtistHandler) Create(c echo.Context) error {
	var in service.ArtistInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.Dir.CreateArtist(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update rewrites every field of the artist.
func (h *ArtistHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var in service.ArtistInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.Dir.UpdateArtist(c.Request().Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Delete removes the artist and the shows it performs in.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.Dir.DeleteArtist(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
