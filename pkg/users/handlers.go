package users

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	userService *Service
}

func (h *handler) roster(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	roster := make([]RosterEntry, 0, len(users))
	for _, u := range users {
		roster = append(roster, RosterEntry{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Initials:    u.Initials,
		})
	}

	return errors.WithStack(c.JSON(http.StatusOK, roster))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, users))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Create(ctx, CreateUserOptions(params))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, user))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	params := UpdateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateUserOptions{Columns: []string{}, PIN: params.PIN}
	if params.DisplayName != nil && *params.DisplayName != user.DisplayName {
		user.DisplayName = *params.DisplayName
		opts.Columns = append(opts.Columns, "display_name")
	}
	if params.Initials != nil && strings.ToUpper(*params.Initials) != user.Initials {
		user.Initials = strings.ToUpper(*params.Initials)
		opts.Columns = append(opts.Columns, "initials")
	}
	if params.Role != nil && *params.Role != user.Role {
		user.Role = *params.Role
		opts.Columns = append(opts.Columns, "role")
	}
	if params.Stations != nil {
		user.Stations = *params.Stations
		opts.Columns = append(opts.Columns, "stations")
	}

	if err := h.userService.Update(ctx, user, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, user))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	if currentUserID, _ := c.Get("user_id").(int); currentUserID == id {
		return errcodes.ValidationError("Impossible de supprimer votre propre compte")
	}

	if err := h.userService.Delete(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
