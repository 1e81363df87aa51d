package migrations

import (
	"context"

	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Shrinkage values are totals from fiber saturation to oven dry.
var seedSpecies = []*models.Species{
	{Code: "HET", Name: "Hêtre", LatinName: "Fagus sylvatica", GreenDensity: 950, DryDensity: 720, FiberSaturation: 32, TangentialShrinkage: 11.8, RadialShrinkage: 5.8},
	{Code: "CHA", Name: "Charme", LatinName: "Carpinus betulus", GreenDensity: 1000, DryDensity: 800, FiberSaturation: 30, TangentialShrinkage: 11.5, RadialShrinkage: 6.5},
	{Code: "CHE", Name: "Chêne indigène", LatinName: "Quercus", GreenDensity: 1070, DryDensity: 720, FiberSaturation: 29, TangentialShrinkage: 10.0, RadialShrinkage: 4.5},
	{Code: "CHS", Name: "Chêne sessile", LatinName: "Quercus petraea", GreenDensity: 1070, DryDensity: 720, FiberSaturation: 29, TangentialShrinkage: 9.8, RadialShrinkage: 4.3},
	{Code: "CHP", Name: "Chêne pédonculé", LatinName: "Quercus robur", GreenDensity: 1070, DryDensity: 720, FiberSaturation: 29, TangentialShrinkage: 10.2, RadialShrinkage: 4.6},
	{Code: "CHR", Name: "Chêne rouge", LatinName: "Quercus rubra", GreenDensity: 1000, DryDensity: 660, FiberSaturation: 27, TangentialShrinkage: 8.6, RadialShrinkage: 4.0},
	{Code: "FRE", Name: "Frêne", LatinName: "Fraxinus", GreenDensity: 920, DryDensity: 690, FiberSaturation: 28, TangentialShrinkage: 8.0, RadialShrinkage: 5.0},
	{Code: "FRC", Name: "Frêne commun", LatinName: "Fraxinus excelsior", GreenDensity: 920, DryDensity: 690, FiberSaturation: 28, TangentialShrinkage: 8.0, RadialShrinkage: 5.0},
	{Code: "CHT", Name: "Châtaignier", LatinName: "Castanea sativa", GreenDensity: 950, DryDensity: 590, FiberSaturation: 30, TangentialShrinkage: 6.5, RadialShrinkage: 3.5},
	{Code: "MER", Name: "Merisier", LatinName: "Prunus avium", GreenDensity: 900, DryDensity: 620, FiberSaturation: 29, TangentialShrinkage: 7.5, RadialShrinkage: 3.8},
	{Code: "NOY", Name: "Noyer", LatinName: "Juglans regia", GreenDensity: 900, DryDensity: 680, FiberSaturation: 27, TangentialShrinkage: 7.5, RadialShrinkage: 5.5},
	{Code: "NON", Name: "Noyer noir", LatinName: "Juglans nigra", GreenDensity: 900, DryDensity: 610, FiberSaturation: 26, TangentialShrinkage: 7.8, RadialShrinkage: 5.5},
	{Code: "ROB", Name: "Robinier", LatinName: "Robinia pseudoacacia", GreenDensity: 950, DryDensity: 770, FiberSaturation: 26, TangentialShrinkage: 5.0, RadialShrinkage: 3.0},
	{Code: "ERP", Name: "Érable plane", LatinName: "Acer platanoides", GreenDensity: 900, DryDensity: 650, FiberSaturation: 29, TangentialShrinkage: 8.0, RadialShrinkage: 3.0},
	{Code: "ERC", Name: "Érable champêtre", LatinName: "Acer campestre", GreenDensity: 900, DryDensity: 650, FiberSaturation: 29, TangentialShrinkage: 7.8, RadialShrinkage: 3.2},
	{Code: "ERS", Name: "Érable sycomore", LatinName: "Acer pseudoplatanus", GreenDensity: 900, DryDensity: 650, FiberSaturation: 29, TangentialShrinkage: 8.5, RadialShrinkage: 3.5},
	{Code: "BOU", Name: "Bouleau", LatinName: "Betula", GreenDensity: 850, DryDensity: 650, FiberSaturation: 28, TangentialShrinkage: 7.5, RadialShrinkage: 5.5},
	{Code: "TRE", Name: "Tremble", LatinName: "Populus tremula", GreenDensity: 800, DryDensity: 500, FiberSaturation: 29, TangentialShrinkage: 8.5, RadialShrinkage: 3.5},
	{Code: "PEU", Name: "Peuplier", LatinName: "Populus", GreenDensity: 800, DryDensity: 450, FiberSaturation: 29, TangentialShrinkage: 8.5, RadialShrinkage: 3.5},
	{Code: "TIL", Name: "Tilleul", LatinName: "Tilia", GreenDensity: 800, DryDensity: 530, FiberSaturation: 31, TangentialShrinkage: 9.5, RadialShrinkage: 5.5},
	{Code: "AUN", Name: "Aulne glutineux", LatinName: "Alnus glutinosa", GreenDensity: 850, DryDensity: 530, FiberSaturation: 29, TangentialShrinkage: 7.3, RadialShrinkage: 4.0},
	{Code: "ALT", Name: "Alisier torminal", LatinName: "Sorbus torminalis", GreenDensity: 950, DryDensity: 750, FiberSaturation: 30, TangentialShrinkage: 10.0, RadialShrinkage: 5.0},
	{Code: "ALB", Name: "Alisier blanc", LatinName: "Sorbus aria", GreenDensity: 950, DryDensity: 750, FiberSaturation: 30, TangentialShrinkage: 9.5, RadialShrinkage: 4.8},
	{Code: "COR", Name: "Cormier", LatinName: "Sorbus domestica", GreenDensity: 950, DryDensity: 800, FiberSaturation: 30, TangentialShrinkage: 10.5, RadialShrinkage: 5.2},
	{Code: "ORM", Name: "Orme", LatinName: "Ulmus", GreenDensity: 950, DryDensity: 680, FiberSaturation: 28, TangentialShrinkage: 8.0, RadialShrinkage: 4.5},
	{Code: "PLA", Name: "Platane", LatinName: "Platanus acerifolia", GreenDensity: 900, DryDensity: 620, FiberSaturation: 28, TangentialShrinkage: 8.5, RadialShrinkage: 4.5},
	{Code: "MAR", Name: "Marronnier", LatinName: "Aesculus hippocastanum", GreenDensity: 850, DryDensity: 510, FiberSaturation: 30, TangentialShrinkage: 8.0, RadialShrinkage: 3.0},
	{Code: "SAU", Name: "Saule blanc", LatinName: "Salix alba", GreenDensity: 750, DryDensity: 450, FiberSaturation: 28, TangentialShrinkage: 8.5, RadialShrinkage: 4.0},
	{Code: "POI", Name: "Poirier", LatinName: "Pyrus communis", GreenDensity: 950, DryDensity: 700, FiberSaturation: 28, TangentialShrinkage: 10.0, RadialShrinkage: 4.5},
	{Code: "POM", Name: "Pommier", LatinName: "Malus domestica", GreenDensity: 950, DryDensity: 700, FiberSaturation: 28, TangentialShrinkage: 10.0, RadialShrinkage: 4.5},
	{Code: "PRU", Name: "Prunier", LatinName: "Prunus domestica", GreenDensity: 950, DryDensity: 750, FiberSaturation: 28, TangentialShrinkage: 9.0, RadialShrinkage: 4.0},
	{Code: "MIC", Name: "Micocoulier", LatinName: "Celtis australis", GreenDensity: 900, DryDensity: 650, FiberSaturation: 27, TangentialShrinkage: 8.0, RadialShrinkage: 4.0},
	{Code: "EPC", Name: "Épicéa commun", LatinName: "Picea abies", GreenDensity: 860, DryDensity: 470, FiberSaturation: 30, TangentialShrinkage: 8.0, RadialShrinkage: 4.0},
	{Code: "DOU", Name: "Douglas", LatinName: "Pseudotsuga menziesii", GreenDensity: 850, DryDensity: 530, FiberSaturation: 26, TangentialShrinkage: 7.6, RadialShrinkage: 4.8},
	{Code: "MEE", Name: "Mélèze d'Europe", LatinName: "Larix decidua", GreenDensity: 900, DryDensity: 590, FiberSaturation: 28, TangentialShrinkage: 7.8, RadialShrinkage: 3.3},
	{Code: "PIS", Name: "Pin sylvestre", LatinName: "Pinus sylvestris", GreenDensity: 850, DryDensity: 520, FiberSaturation: 28, TangentialShrinkage: 7.5, RadialShrinkage: 4.0},
	{Code: "PIM", Name: "Pin maritime", LatinName: "Pinus pinaster", GreenDensity: 900, DryDensity: 530, FiberSaturation: 29, TangentialShrinkage: 8.0, RadialShrinkage: 4.5},
	{Code: "PIN", Name: "Pin noir", LatinName: "Pinus nigra", GreenDensity: 900, DryDensity: 550, FiberSaturation: 28, TangentialShrinkage: 7.5, RadialShrinkage: 4.0},
	{Code: "SAP", Name: "Sapin pectiné", LatinName: "Abies alba", GreenDensity: 850, DryDensity: 450, FiberSaturation: 30, TangentialShrinkage: 7.5, RadialShrinkage: 3.8},
}

var seedProducts = []*models.Product{
	{Code: "GRU", Name: "Grumes"},
	{Code: "TRO", Name: "Tronçons"},
	{Code: "PQT", Name: "Paquets"},
	{Code: "PDB", Name: "Prédébits"},
	{Code: "PNX", Name: "Panneaux"},
}

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewInsert().Model(&seedSpecies).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.NewInsert().Model(&seedProducts).Exec(ctx)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DELETE FROM products")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec("DELETE FROM species")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
