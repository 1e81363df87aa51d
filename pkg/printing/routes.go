package printing

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
)

func RegisterRoutesWithGroup(g *echo.Group, pipeline *Pipeline, authMiddleware *auth.Middleware) {
	h := &handler{
		pipeline: pipeline,
	}

	g.POST("/:station", h.print, authMiddleware.RequireStationAccess("station"))
}
