package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the JWT from the cookie, reloads the
// user and stores it on the context. Requests without a valid session get a
// 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		claims, err := m.authService.ValidateToken(cookie.Value)
		if err != nil {
			return errcodes.Unauthorized("Invalid or expired token")
		}

		// The user may have been deleted since the token was issued.
		user, err := m.authService.GetUserByID(ctx, claims.UserID)
		if err != nil {
			return errcodes.Unauthorized("User not found")
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("user", user)

		return next(c)
	}
}

// RequireAdmin rejects non-admin users. Must be used after Authenticate.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get("user").(*models.User)
		if !ok {
			return errcodes.Unauthorized("Authentication required")
		}
		if !user.IsAdmin() {
			return errcodes.Forbidden("This action")
		}
		return next(c)
	}
}

// RequireStationAccess returns middleware that checks the user may work on
// the station named by the given route parameter. Must be used after
// Authenticate.
func (m *Middleware) RequireStationAccess(paramName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				return errcodes.Unauthorized("Authentication required")
			}

			stationID := c.Param(paramName)
			if stationID != "" && !user.CanUseStation(stationID) {
				return errcodes.Forbidden("Access to this station")
			}

			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get("user").(*models.User)
	return user, ok
}
