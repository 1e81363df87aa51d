package printers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/zebra"
	"github.com/mallobois/woodstock/pkg/zpl"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	printerService *Service
	transport      zebra.Transport
	renderer       *zpl.Renderer
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	printers, err := h.printerService.ListPrinters(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, printers))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreatePrinterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	printer, err := h.printerService.CreatePrinter(ctx, CreatePrinterOptions(params))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, printer))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdatePrinterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	printer, err := h.printerService.RetrievePrinter(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdatePrinterOptions{Columns: []string{}}
	if params.Name != nil && *params.Name != "" {
		printer.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}
	if params.IP != nil && *params.IP != printer.IP {
		printer.IP = *params.IP
		opts.Columns = append(opts.Columns, "ip")
	}
	if params.Port != nil && *params.Port != printer.Port {
		printer.Port = *params.Port
		opts.Columns = append(opts.Columns, "port")
	}

	if err := h.printerService.UpdatePrinter(ctx, printer, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, printer))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.printerService.DeletePrinter(ctx, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// test sends a short identification label so an administrator can check the
// printer is reachable.
func (h *handler) test(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	printer, err := h.printerService.RetrievePrinter(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	addr := zebra.Address{Host: printer.IP, Port: printer.Port}
	doc := h.renderer.RenderPrinterTest(printer.Name, addr.String(), time.Now())

	res := h.transport.Send(ctx, []byte(doc), addr)
	if !res.Success {
		log.Warn("printer test failed", logger.Data{
			"printer_id": printer.ID,
			"failure":    string(res.Failure),
			"message":    res.Message,
		})
		return errcodes.PrintFailed(res.Message)
	}

	return errors.WithStack(c.JSON(http.StatusOK, TestResponse{Success: true, Message: res.Message}))
}
