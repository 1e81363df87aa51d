// Package reference serves the wood species, product and quality tables
// station screens pick their values from.
package reference

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/mallobois/woodstock/pkg/thickness"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	defaultCacheTTL = time.Hour
	allSpeciesKey   = "species:*"
)

type Options struct {
	StandardDryThicknesses []int
	TargetMoisturePercent  float64
	CacheTTL               time.Duration
}

type CreateQualityOptions struct {
	SpeciesCode string
	ProductCode string
	Code        string
	Name        string
}

// ThicknessTable is the green sawing thickness for each standard dry
// thickness of one species.
type ThicknessTable struct {
	Species               string           `json:"species"`
	TargetMoisturePercent float64          `json:"target_moisture_percent"`
	Thicknesses           []thickness.Pair `json:"thicknesses"`
}

type Service struct {
	db          *bun.DB
	cache       *cache.Cache
	thicknesses []int
	moisture    float64
}

func NewService(db *bun.DB, opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		db:          db,
		cache:       cache.New(ttl, ttl*2),
		thicknesses: opts.StandardDryThicknesses,
		moisture:    opts.TargetMoisturePercent,
	}
}

func (svc *Service) ListSpecies(ctx context.Context) ([]*models.Species, error) {
	if cached, found := svc.cache.Get(allSpeciesKey); found {
		if species, ok := cached.([]*models.Species); ok {
			return species, nil
		}
	}

	species := []*models.Species{}
	err := svc.db.
		NewSelect().
		Model(&species).
		Order("sp.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	svc.cache.Set(allSpeciesKey, species, cache.DefaultExpiration)
	return species, nil
}

func (svc *Service) RetrieveSpecies(ctx context.Context, code string) (*models.Species, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := "species:" + code
	if cached, found := svc.cache.Get(key); found {
		if species, ok := cached.(*models.Species); ok {
			return species, nil
		}
	}

	species := &models.Species{}
	err := svc.db.
		NewSelect().
		Model(species).
		Where("sp.code = ?", code).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Species")
		}
		return nil, errors.WithStack(err)
	}

	svc.cache.Set(key, species, cache.DefaultExpiration)
	return species, nil
}

func (svc *Service) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products := []*models.Product{}
	err := svc.db.
		NewSelect().
		Model(&products).
		Order("pr.code ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return products, nil
}

// ListQualities returns the qualities defined for one species and product.
// Codes match case-insensitively.
func (svc *Service) ListQualities(ctx context.Context, speciesCode, productCode string) ([]*models.Quality, error) {
	qualities := []*models.Quality{}
	err := svc.db.
		NewSelect().
		Model(&qualities).
		Where("q.species_code = ? COLLATE NOCASE", speciesCode).
		Where("q.product_code = ? COLLATE NOCASE", productCode).
		Order("q.code ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return qualities, nil
}

func (svc *Service) CreateQuality(ctx context.Context, opts CreateQualityOptions) (*models.Quality, error) {
	species, err := svc.RetrieveSpecies(ctx, opts.SpeciesCode)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Species")) {
			return nil, errcodes.ValidationError("Unknown species " + opts.SpeciesCode)
		}
		return nil, err
	}

	product := &models.Product{}
	err = svc.db.
		NewSelect().
		Model(product).
		Where("pr.code = ? COLLATE NOCASE", opts.ProductCode).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.ValidationError("Unknown product " + opts.ProductCode)
		}
		return nil, errors.WithStack(err)
	}

	existing, err := svc.ListQualities(ctx, species.Code, product.Code)
	if err != nil {
		return nil, err
	}
	for _, q := range existing {
		if strings.EqualFold(q.Code, opts.Code) {
			return nil, errcodes.Conflict("Quality " + opts.Code + " already exists")
		}
	}

	quality := &models.Quality{
		SpeciesCode: species.Code,
		ProductCode: product.Code,
		Code:        opts.Code,
		Name:        opts.Name,
	}
	if quality.Name == "" {
		quality.Name = quality.Code
	}

	_, err = svc.db.
		NewInsert().
		Model(quality).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return quality, nil
}

// Thicknesses computes the green thickness to saw for each standard dry
// thickness of a species at the configured target moisture.
func (svc *Service) Thicknesses(ctx context.Context, speciesCode string) (*ThicknessTable, error) {
	species, err := svc.RetrieveSpecies(ctx, speciesCode)
	if err != nil {
		return nil, err
	}

	profile := thickness.ShrinkageProfile{
		FiberSaturationPoint: species.FiberSaturation,
		TangentialShrinkage:  species.TangentialShrinkage,
	}
	pairs, err := thickness.GreenTable(profile, svc.thicknesses, svc.moisture)
	if err != nil {
		return nil, errors.Wrapf(err, "species %s", species.Code)
	}

	return &ThicknessTable{
		Species:               species.Code,
		TargetMoisturePercent: svc.moisture,
		Thicknesses:           pairs,
	}, nil
}
