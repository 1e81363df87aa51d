package reference

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	referenceService *Service
}

func (h *handler) species(c echo.Context) error {
	species, err := h.referenceService.ListSpecies(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, species))
}

func (h *handler) products(c echo.Context) error {
	products, err := h.referenceService.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, products))
}

func (h *handler) qualities(c echo.Context) error {
	qualities, err := h.referenceService.ListQualities(c.Request().Context(), c.Param("species"), c.Param("product"))
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, qualities))
}

func (h *handler) createQuality(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateQualityPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	quality, err := h.referenceService.CreateQuality(ctx, CreateQualityOptions(params))
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusCreated, quality))
}

func (h *handler) thicknesses(c echo.Context) error {
	table, err := h.referenceService.Thicknesses(c.Request().Context(), c.Param("species"))
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, table))
}
