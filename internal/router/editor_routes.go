package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-booking/internal/handler"
	"github.com/iliyamo/fyyur-booking/internal/middleware"
	"github.com/iliyamo/fyyur-booking/internal/service"
	"github.com/iliyamo/fyyur-booking/internal/utils"
)

// RegisterEditor registers the mutation endpoints.  When secret is set
// every route requires a bearer token carrying the EDITOR role.  after
// runs inside the auth check on every write route, typically the cache
// purge.
func RegisterEditor(g *echo.Group, dir *service.Directory, secret string, after ...echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if secret != "" {
		mw = append(mw, middleware.JWTAuth(secret), middleware.RequireRole(utils.RoleEditor))
	}
	mw = append(mw, after...)
	v := handler.NewVenueHandler(dir)
	a := handler.NewArtistHandler(dir)
	s := handler.NewShowHandler(dir)

	// ---- Venues ----
	g.POST("/venues", v.Create, mw...)
	g.PUT("/venues/:id", v.Update, mw...)
	g.POST("/venues/:id", v.Update, mw...)
	g.POST("/venues/:id/edit", v.Update, mw...)
	g.DELETE("/venues/:id", v.Delete, mw...)

	// ---- Artists ----
	g.POST("/artists", a.Create, mw...)
	g.PUT("/artists/:id", a.Update, mw...)
	g.POST("/artists/:id", a.Update, mw...)
	g.POST("/artists/:id/edit", a.Update, mw...)
	g.DELETE("/artists/:id", a.Delete, mw...)

	// ---- Shows ----
	g.POST("/shows", s.Create, mw...)
}
