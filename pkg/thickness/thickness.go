// Package thickness computes green (sawing) board thicknesses from a target
// dry thickness and a species' shrinkage profile.
package thickness

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidProfile is returned for species data that can't describe real
// wood: a non-positive fiber saturation point or a shrinkage of 100% or more.
var ErrInvalidProfile = errors.New("invalid shrinkage profile")

// ShrinkageProfile holds the physical properties of a species the
// calculation depends on.
type ShrinkageProfile struct {
	// FiberSaturationPoint is the moisture percentage (PSF) below which the
	// wood starts shrinking.
	FiberSaturationPoint float64
	// TangentialShrinkage is the total tangential shrinkage, in percent, from
	// PSF down to 0% moisture.
	TangentialShrinkage float64
}

// Pair is one row of a species thickness table.
type Pair struct {
	DryMM   int `json:"dry_mm"`
	GreenMM int `json:"green_mm"`
}

func (p ShrinkageProfile) validate() error {
	if p.FiberSaturationPoint <= 0 {
		return errors.Wrapf(ErrInvalidProfile, "fiber saturation point %.1f", p.FiberSaturationPoint)
	}
	if p.TangentialShrinkage < 0 || p.TangentialShrinkage >= 100 {
		return errors.Wrapf(ErrInvalidProfile, "tangential shrinkage %.1f%%", p.TangentialShrinkage)
	}
	return nil
}

// EffectiveShrinkage returns the fraction of thickness lost when drying from
// green down to the target moisture content. Moisture at or above the fiber
// saturation point causes no shrinkage.
func EffectiveShrinkage(profile ShrinkageProfile, moisturePct float64) (float64, error) {
	if err := profile.validate(); err != nil {
		return 0, err
	}
	if moisturePct >= profile.FiberSaturationPoint {
		return 0, nil
	}
	if moisturePct < 0 {
		moisturePct = 0
	}
	return profile.TangentialShrinkage / 100 *
		(profile.FiberSaturationPoint - moisturePct) / profile.FiberSaturationPoint, nil
}

// ComputeGreenThickness returns the thickness, rounded to the nearest
// millimetre, a board must be sawn at so that it measures dryMM once dried
// to moisturePct.
func ComputeGreenThickness(profile ShrinkageProfile, dryMM, moisturePct float64) (int, error) {
	shrinkage, err := EffectiveShrinkage(profile, moisturePct)
	if err != nil {
		return 0, err
	}
	return int(math.Round(dryMM / (1 - shrinkage))), nil
}

// GreenTable computes the green thickness of every dry thickness given, in
// the same order.
func GreenTable(profile ShrinkageProfile, dryMMs []int, moisturePct float64) ([]Pair, error) {
	pairs := make([]Pair, 0, len(dryMMs))
	for _, dry := range dryMMs {
		green, err := ComputeGreenThickness(profile, float64(dry), moisturePct)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{DryMM: dry, GreenMM: green})
	}
	return pairs, nil
}
