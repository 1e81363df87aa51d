package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "woodstock_session"
	// CookieMaxAge is how long the cookie is valid.
	CookieMaxAge = 7 * 24 * time.Hour // 7 days
)

type handler struct {
	authService *Service
}

func buildMeResponse(user *models.User) MeResponse {
	stations := user.Stations
	if stations == nil {
		stations = []string{}
	}
	return MeResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Initials:    user.Initials,
		Role:        user.Role,
		IsAdmin:     user.IsAdmin(),
		Stations:    stations,
	}
}

func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Username, params.PIN)
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(sessionCookie(c, token, int(CookieMaxAge.Seconds())))

	return errors.WithStack(c.JSON(http.StatusOK, buildMeResponse(user)))
}

func (h *handler) logout(c echo.Context) error {
	// MaxAge -1 makes the browser drop the cookie.
	c.SetCookie(sessionCookie(c, "", -1))

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"success": true}))
}

func (h *handler) me(c echo.Context) error {
	user, ok := UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	return errors.WithStack(c.JSON(http.StatusOK, buildMeResponse(user)))
}

func sessionCookie(c echo.Context, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil || c.Request().Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	}
}
