package printing

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
	"github.com/pkg/errors"
)

type handler struct {
	pipeline *Pipeline
}

func (h *handler) print(c echo.Context) error {
	ctx := c.Request().Context()

	params := PrintPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	fields := make(map[string]string, len(params.Fields))
	for k, v := range params.Fields {
		fields[k] = strings.TrimSpace(v)
	}

	req := Request{
		StationID: c.Param("station"),
		Fields:    fields,
		Copies:    params.Copies,
		Print:     params.Print,
		Source:    params.Source,
	}
	if user, ok := auth.UserFromContext(c); ok {
		req.Operator = user.DisplayName
	}

	resp, err := h.pipeline.Print(ctx, req)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
