package audit

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
)

// RegisterRoutesWithGroup registers the print log routes on the stations
// group, under /stations/:id.
func RegisterRoutesWithGroup(g *echo.Group, auditService *Service, stations StationSource, authMiddleware *auth.Middleware) {
	h := &handler{
		auditService: auditService,
		stations:     stations,
	}

	g.GET("/:id/history", h.history, authMiddleware.RequireStationAccess("id"))
	g.GET("/:id/series", h.series, authMiddleware.RequireStationAccess("id"))
	g.GET("/:id/export.xlsx", h.export, authMiddleware.RequireAdmin)
}
