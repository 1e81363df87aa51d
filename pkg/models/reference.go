package models

import (
	"github.com/uptrace/bun"
)

// Species is a wood essence with the physical properties needed to size
// green lumber.
type Species struct {
	bun.BaseModel `bun:"table:species,alias:sp"`

	Code                string  `bun:",pk" json:"code"`
	Name                string  `json:"name"`
	LatinName           string  `json:"latin_name"`
	GreenDensity        int     `json:"green_density"`
	DryDensity          int     `json:"dry_density"`
	FiberSaturation     float64 `json:"fiber_saturation"`
	TangentialShrinkage float64 `json:"tangential_shrinkage"`
	RadialShrinkage     float64 `json:"radial_shrinkage"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	Code string `bun:",pk" json:"code"`
	Name string `json:"name"`
}

type Quality struct {
	bun.BaseModel `bun:"table:qualities,alias:q"`

	ID          int    `bun:",pk,nullzero" json:"id"`
	SpeciesCode string `json:"species_code"`
	ProductCode string `json:"product_code"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}
