package reference

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
)

// RegisterRoutesWithGroup registers reference data routes on a
// pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, referenceService *Service, authMiddleware *auth.Middleware) {
	h := &handler{
		referenceService: referenceService,
	}

	g.GET("/species", h.species)
	g.GET("/products", h.products)
	g.GET("/qualities/:species/:product", h.qualities)
	g.POST("/qualities", h.createQuality, authMiddleware.RequireAdmin)
	g.GET("/thicknesses/:species", h.thicknesses)
}
