package stations

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"github.com/mallobois/woodstock/pkg/counters"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const defaultSeries = "2501"

type ListStationsOptions struct {
	// IDs restricts the list to these stations. Empty means every station.
	IDs []string
}

type CreateStationOptions struct {
	ID              string
	Name            string
	Description     string
	Series          string
	Prefix          string
	PrinterID       *string
	DefaultCopies   *int
	ProducesType    *string
	SourceStationID *string
	Fields          []models.FieldDef
}

type UpdateStationOptions struct {
	Columns []string
	// Counter, when set, overrides the station counter.
	Counter *int
}

type Service struct {
	db       *bun.DB
	counters *counters.Store
}

func NewService(db *bun.DB, counterStore *counters.Store) *Service {
	return &Service{db: db, counters: counterStore}
}

// RetrieveStation returns one station or errcodes.NotFound.
func (svc *Service) RetrieveStation(ctx context.Context, id string) (*models.Station, error) {
	station := &models.Station{}
	err := svc.db.
		NewSelect().
		Model(station).
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Station")
		}
		return nil, errors.WithStack(err)
	}
	return station, nil
}

func (svc *Service) ListStations(ctx context.Context, opts ListStationsOptions) ([]*models.Station, error) {
	stations := []*models.Station{}
	q := svc.db.
		NewSelect().
		Model(&stations).
		Order("s.position ASC", "s.id ASC")

	if len(opts.IDs) > 0 {
		q = q.Where("s.id IN (?)", bun.In(opts.IDs))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return stations, nil
}

func (svc *Service) CreateStation(ctx context.Context, opts CreateStationOptions) (*models.Station, error) {
	id := Slugify(opts.ID)
	if id == "" {
		return nil, errcodes.ValidationError("ID requis")
	}

	exists, err := svc.db.
		NewSelect().
		Model((*models.Station)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.Conflict("ID déjà utilisé")
	}

	if err := validateFields(opts.Fields); err != nil {
		return nil, err
	}

	printerID := ""
	if opts.PrinterID != nil {
		printerID = *opts.PrinterID
	} else {
		err := svc.db.
			NewSelect().
			Model((*models.Printer)(nil)).
			Column("p.id").
			Order("p.created_at ASC", "p.id ASC").
			Limit(1).
			Scan(ctx, &printerID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, errors.WithStack(err)
		}
	}

	var position int
	err = svc.db.
		NewSelect().
		Model((*models.Station)(nil)).
		ColumnExpr("COALESCE(MAX(s.position), 0) + 1").
		Scan(ctx, &position)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	station := &models.Station{
		ID:              id,
		CreatedAt:       now,
		UpdatedAt:       now,
		Position:        position,
		Name:            opts.Name,
		Description:     opts.Description,
		Series:          opts.Series,
		Prefix:          opts.Prefix,
		Counter:         0,
		PrinterID:       printerID,
		DefaultCopies:   1,
		ProducesType:    opts.ProducesType,
		SourceStationID: opts.SourceStationID,
		Fields:          opts.Fields,
	}
	if station.Name == "" {
		station.Name = id
	}
	if station.Series == "" {
		station.Series = defaultSeries
	}
	if opts.DefaultCopies != nil {
		station.DefaultCopies = *opts.DefaultCopies
	}
	if station.Fields == nil {
		station.Fields = []models.FieldDef{}
	}

	_, err = svc.db.
		NewInsert().
		Model(station).
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return station, nil
}

// UpdateStation writes the listed columns of the station. A counter
// override goes through the counter store so it can't interleave with a
// print on the same station.
func (svc *Service) UpdateStation(ctx context.Context, station *models.Station, opts UpdateStationOptions) error {
	if opts.Counter != nil {
		v, err := svc.counters.Set(ctx, station.ID, *opts.Counter)
		if err != nil {
			return errors.WithStack(err)
		}
		station.Counter = v
	}

	if len(opts.Columns) == 0 {
		return nil
	}
	for _, col := range opts.Columns {
		if col == "fields" {
			if err := validateFields(station.Fields); err != nil {
				return err
			}
		}
	}

	station.UpdatedAt = time.Now()
	columns := append(slices.Clone(opts.Columns), "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(station).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// DeleteStation removes a station. The last remaining station can't be
// removed. Its print log is kept.
func (svc *Service) DeleteStation(ctx context.Context, id string) error {
	return svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.
			NewSelect().
			Model((*models.Station)(nil)).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if count <= 1 {
			return errcodes.Conflict("Au moins un poste requis")
		}

		res, err := tx.
			NewDelete().
			Model((*models.Station)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		if n == 0 {
			return errcodes.NotFound("Station")
		}
		return nil
	})
}

// Slugify turns a free-form station id into the stored form: trimmed,
// lowercased, with spaces replaced by underscores.
func Slugify(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "_")
}

func validateFields(fields []models.FieldDef) error {
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.ID] {
			return errcodes.ValidationError("Duplicate field id " + f.ID)
		}
		seen[f.ID] = true

		switch f.Type {
		case models.FieldTypeText, models.FieldTypeNumber, models.FieldTypeDate:
		case models.FieldTypeReference:
			if f.RefTable == nil || *f.RefTable == "" {
				return errcodes.ValidationError("Field " + f.ID + " needs a reference table")
			}
		default:
			return errcodes.ValidationError("Field " + f.ID + " has an unknown type")
		}
	}
	return nil
}
