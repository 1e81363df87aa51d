package stations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mallobois/woodstock/pkg/counters"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/migrations"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := newTestDB(t)
	return NewService(db, counters.NewStore(db))
}

func TestService_ListStations(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	all, err := svc.ListStations(ctx, ListStationsOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "troncons", all[0].ID)
	assert.Equal(t, "sciage", all[1].ID)

	some, err := svc.ListStations(ctx, ListStationsOptions{IDs: []string{"sciage"}})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "sciage", some[0].ID)
}

func TestService_CreateStation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	essences := "essences"
	station, err := svc.CreateStation(ctx, CreateStationOptions{
		ID:     "  Sechoir Nord ",
		Prefix: "SEC-",
		Fields: []models.FieldDef{
			{ID: "lot", Label: "Lot", Type: models.FieldTypeText},
			{ID: "essence", Label: "Essence", Type: models.FieldTypeReference, RefTable: &essences},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "sechoir_nord", station.ID)
	assert.Equal(t, "sechoir_nord", station.Name)
	assert.Equal(t, "2501", station.Series)
	assert.Equal(t, 0, station.Counter)
	assert.Equal(t, 1, station.DefaultCopies)
	assert.Equal(t, "zebra1", station.PrinterID)
	assert.Equal(t, 3, station.Position)

	got, err := svc.RetrieveStation(ctx, "sechoir_nord")
	require.NoError(t, err)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, models.FieldTypeReference, got.Fields[1].Type)
	require.NotNil(t, got.Fields[1].RefTable)
	assert.Equal(t, "essences", *got.Fields[1].RefTable)

	_, err = svc.CreateStation(ctx, CreateStationOptions{ID: "Sechoir nord"})
	assert.ErrorIs(t, err, errcodes.Conflict("ID déjà utilisé"))
}

func TestService_CreateStation_RejectsBadFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateStation(ctx, CreateStationOptions{
		ID:     "broken",
		Fields: []models.FieldDef{{ID: "ref", Label: "Ref", Type: models.FieldTypeReference}},
	})
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)

	_, err = svc.CreateStation(ctx, CreateStationOptions{
		ID: "dupes",
		Fields: []models.FieldDef{
			{ID: "lot", Label: "Lot", Type: models.FieldTypeText},
			{ID: "lot", Label: "Lot 2", Type: models.FieldTypeText},
		},
	})
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
}

func TestService_UpdateStation_CounterOverride(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	station, err := svc.RetrieveStation(ctx, "troncons")
	require.NoError(t, err)

	station.Prefix = "TR-"
	counter := 2_000_041
	err = svc.UpdateStation(ctx, station, UpdateStationOptions{
		Columns: []string{"prefix"},
		Counter: &counter,
	})
	require.NoError(t, err)
	assert.Equal(t, 41, station.Counter)

	got, err := svc.RetrieveStation(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, "TR-", got.Prefix)
	assert.Equal(t, 41, got.Counter)
}

func TestService_DeleteStation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	err := svc.DeleteStation(ctx, "nope")
	assert.ErrorIs(t, err, errcodes.NotFound("Station"))

	require.NoError(t, svc.DeleteStation(ctx, "sciage"))

	err = svc.DeleteStation(ctx, "troncons")
	assert.ErrorIs(t, err, errcodes.Conflict("Au moins un poste requis"))

	_, err = svc.RetrieveStation(ctx, "troncons")
	assert.NoError(t, err)
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "troncons", Slugify("troncons"))
	assert.Equal(t, "scie_de_tete", Slugify(" Scie de Tete "))
	assert.Empty(t, Slugify("   "))
}
