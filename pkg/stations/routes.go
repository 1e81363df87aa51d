package stations

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
)

// RegisterRoutesWithGroup registers station routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, stationService *Service, authMiddleware *auth.Middleware) {
	h := &handler{
		stationService: stationService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve, authMiddleware.RequireStationAccess("id"))
	g.POST("", h.create, authMiddleware.RequireAdmin)
	g.PATCH("/:id", h.update, authMiddleware.RequireAdmin)
	g.DELETE("/:id", h.delete, authMiddleware.RequireAdmin)
}
