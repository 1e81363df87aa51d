package printers

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
	"github.com/mallobois/woodstock/pkg/zebra"
	"github.com/mallobois/woodstock/pkg/zpl"
)

// RegisterRoutesWithGroup registers printer routes on a pre-configured group.
// Every route is admin only.
func RegisterRoutesWithGroup(g *echo.Group, printerService *Service, transport zebra.Transport, renderer *zpl.Renderer, authMiddleware *auth.Middleware) {
	h := &handler{
		printerService: printerService,
		transport:      transport,
		renderer:       renderer,
	}

	g.Use(authMiddleware.RequireAdmin)
	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/test", h.test)
}
