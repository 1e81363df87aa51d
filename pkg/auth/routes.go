package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the auth routes and returns the middleware other
// route groups use.
func RegisterRoutes(e *echo.Echo, db *bun.DB, jwtSecret string) *Middleware {
	authService := NewService(db, jwtSecret)
	middleware := NewMiddleware(authService)

	h := &handler{
		authService: authService,
	}

	auth := e.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/logout", h.logout)
	auth.GET("/me", h.me, middleware.Authenticate)

	return middleware
}
