package audit

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StationSource interface {
	RetrieveStation(ctx context.Context, id string) (*models.Station, error)
}

type handler struct {
	auditService *Service
	stations     StationSource
}

func (h *handler) history(c echo.Context) error {
	ctx := c.Request().Context()

	params := HistoryQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	station, err := h.stations.RetrieveStation(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	logs, err := h.auditService.History(ctx, station.ID, params.Limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, logs))
}

func (h *handler) series(c echo.Context) error {
	ctx := c.Request().Context()

	station, err := h.stations.RetrieveStation(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	series, err := h.auditService.Series(ctx, station.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, series))
}

func (h *handler) export(c echo.Context) error {
	ctx := c.Request().Context()

	station, err := h.stations.RetrieveStation(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	// Buffered so a failure halfway through still gets a proper error
	// response.
	var buf bytes.Buffer
	if err := h.auditService.Export(ctx, station, &buf); err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", SheetName(station)+".xlsx"))
	return errors.WithStack(c.Blob(http.StatusOK, xlsxMIME, buf.Bytes()))
}
