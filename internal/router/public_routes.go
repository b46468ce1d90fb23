package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/handler"
	"github.com/iliyamo/fyyur-booking/internal/service"
)

// RegisterPublic registers the read-only directory endpoints.  Search also
// answers POST so HTML search forms can submit to it.
func RegisterPublic(g *echo.Group, dir *service.Directory) {
	v := handler.NewVenueHandler(dir)
	a := handler.NewArtistHandler(dir)
	s := handler.NewShowHandler(dir)

	// ---- Venues ----
	g.GET("/venues", v.List)
	g.GET("/venues/search", v.Search)
	g.POST("/venues/search", v.Search)
	g.GET("/venues/:id", v.Show)
	g.GET("/venues/:id/edit", v.Edit)

	// ---- Artists ----
	g.GET("/artists", a.List)
	g.GET("/artists/search", a.Search)
	g.POST("/artists/search", a.Search)
	g.GET("/artists/:id", a.Show)
	g.GET("/artists/:id/edit", a.Edit)

	// ---- Shows ----
	g.GET("/shows", s.List)
	g.GET("/shows/:id", s.Get)

	// ---- Form choices ----
	g.GET("/meta/genres", handler.Genres)
	g.GET("/meta/states", handler.States)
}
