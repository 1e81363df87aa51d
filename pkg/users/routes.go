package users

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the user routes. The roster is public so the
// login screen can list who may sign in.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	e.GET("/users/roster", h.roster)

	users := e.Group("/users")
	users.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)

	users.GET("", h.list)
	users.POST("", h.create)
	users.PATCH("/:id", h.update)
	users.DELETE("/:id", h.delete)

	return userService
}
