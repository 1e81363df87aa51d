package config

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PublicSettings is the subset of the configuration the station screens need
// to build their forms.
type PublicSettings struct {
	OrganizationName       string  `json:"organization_name"`
	MaxCopies              int     `json:"max_copies"`
	TargetMoisturePercent  float64 `json:"target_moisture_percent"`
	StandardDryThicknesses []int   `json:"standard_dry_thicknesses"`
}

type handler struct {
	config *Config
}

func (h *handler) retrieve(c echo.Context) error {
	settings := PublicSettings{
		OrganizationName:       h.config.OrganizationName,
		MaxCopies:              h.config.MaxCopies,
		TargetMoisturePercent:  h.config.TargetMoisturePercent,
		StandardDryThicknesses: h.config.StandardDryThicknesses,
	}

	return errors.WithStack(c.JSON(http.StatusOK, settings))
}
