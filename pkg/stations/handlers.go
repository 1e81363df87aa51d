package stations

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/auth"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	stationService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	opts := ListStationsOptions{}
	// Operators only see the stations they're assigned to.
	if user, ok := auth.UserFromContext(c); ok && !user.IsAdmin() {
		opts.IDs = user.Stations
	}

	stations, err := h.stationService.ListStations(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, stations))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	station, err := h.stationService.RetrieveStation(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, station))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateStationPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	station, err := h.stationService.CreateStation(ctx, CreateStationOptions{
		ID:              params.ID,
		Name:            params.Name,
		Description:     params.Description,
		Series:          params.Series,
		Prefix:          params.Prefix,
		PrinterID:       emptyToNil(params.PrinterID),
		DefaultCopies:   params.DefaultCopies,
		ProducesType:    emptyToNil(params.ProducesType),
		SourceStationID: emptyToNil(params.SourceStationID),
		Fields:          toFieldDefs(params.Fields),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, station))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateStationPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	station, err := h.stationService.RetrieveStation(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateStationOptions{Columns: []string{}, Counter: params.Counter}

	if params.Name != nil && *params.Name != station.Name {
		if *params.Name == "" {
			return errcodes.ValidationError("Name can't be empty")
		}
		station.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}
	if params.Description != nil {
		station.Description = *params.Description
		opts.Columns = append(opts.Columns, "description")
	}
	if params.Series != nil {
		station.Series = *params.Series
		opts.Columns = append(opts.Columns, "series")
	}
	if params.Prefix != nil {
		station.Prefix = *params.Prefix
		opts.Columns = append(opts.Columns, "prefix")
	}
	if params.PrinterID != nil && *params.PrinterID != "" {
		station.PrinterID = *params.PrinterID
		opts.Columns = append(opts.Columns, "printer_id")
	}
	if params.DefaultCopies != nil {
		station.DefaultCopies = *params.DefaultCopies
		opts.Columns = append(opts.Columns, "default_copies")
	}
	if params.ProducesType != nil {
		station.ProducesType = emptyToNil(params.ProducesType)
		opts.Columns = append(opts.Columns, "produces_type")
	}
	if params.SourceStationID != nil {
		station.SourceStationID = emptyToNil(params.SourceStationID)
		opts.Columns = append(opts.Columns, "source_station_id")
	}
	if params.Fields != nil {
		station.Fields = toFieldDefs(*params.Fields)
		opts.Columns = append(opts.Columns, "fields")
	}

	if err := h.stationService.UpdateStation(ctx, station, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, station))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.stationService.DeleteStation(ctx, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
