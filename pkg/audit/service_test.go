package audit

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/mallobois/woodstock/pkg/migrations"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/xuri/excelize/v2"
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

func appendN(ctx context.Context, t *testing.T, svc *Service, stationID, series string, numbers ...int) {
	t.Helper()

	base := time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local)
	for i, n := range numbers {
		err := svc.Append(ctx, stationID, &models.PrintLog{
			PrintedAt: base.Add(time.Duration(i) * time.Minute),
			Series:    series,
			Number:    fmt.Sprintf("%06d", n),
			Copies:    1,
			Operator:  "Opérateur",
		})
		require.NoError(t, err)
	}
}

func TestService_Append(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	record := &models.PrintLog{Series: "2501", Number: "000041", Copies: 3, Operator: "AD"}
	require.NoError(t, svc.Append(ctx, "troncons", record))
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.PrintedAt.IsZero())
	assert.Equal(t, "troncons", record.StationID)

	logs, err := svc.History(ctx, "troncons", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 3, logs[0].Copies)
	assert.Equal(t, map[string]string{}, logs[0].Fields)
}

func TestService_History_NewestFirst(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	numbers := make([]int, 60)
	for i := range numbers {
		numbers[i] = i
	}
	appendN(ctx, t, svc, "troncons", "2501", numbers...)
	appendN(ctx, t, svc, "sciage", "2501", 7)

	logs, err := svc.History(ctx, "troncons", 0)
	require.NoError(t, err)
	require.Len(t, logs, DefaultHistoryLimit)
	assert.Equal(t, "000059", logs[0].Number)
	assert.Equal(t, "000010", logs[len(logs)-1].Number)

	logs, err = svc.History(ctx, "troncons", 5)
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}

func TestService_Series(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	appendN(ctx, t, svc, "troncons", "2501", 12, 3, 12, 7)
	appendN(ctx, t, svc, "troncons", "2502", 1)

	series, err := svc.Series(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"2501": {"000003", "000007", "000012"},
		"2502": {"000001"},
	}, series)

	empty, err := svc.Series(ctx, "sciage")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExportHeader(t *testing.T) {
	t.Parallel()

	pqt := "PQT"
	src := "troncons"
	station := &models.Station{
		ID:              "sciage",
		ProducesType:    &pqt,
		SourceStationID: &src,
		Fields:          []models.FieldDef{{ID: "lot", Label: "Lot"}},
	}
	assert.Equal(t, []string{
		"Date", "Heure", "Série", "Numéro",
		"Essence", "Qualité", "Épaisseur",
		"Source",
		"Lot",
		"Copies", "Opérateur",
	}, ExportHeader(station))

	assert.Equal(t, []string{"Date", "Heure", "Série", "Numéro", "Copies", "Opérateur"}, ExportHeader(&models.Station{ID: "plain"}))
}

func TestService_Export(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	pqt := "PQT"
	station := &models.Station{
		ID:           "troncons",
		ProducesType: &pqt,
		Fields:       []models.FieldDef{{ID: "lot", Label: "Lot"}},
	}

	err := svc.Append(ctx, station.ID, &models.PrintLog{
		PrintedAt: time.Date(2025, 3, 14, 9, 30, 5, 0, time.Local),
		Series:    "2501",
		Number:    "000041",
		Essence:   "Hêtre",
		Quality:   "A",
		Thickness: "32/27",
		Fields:    map[string]string{"lot": "L-12"},
		Copies:    3,
		Operator:  "Opérateur",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, station, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Poste_troncons"}, f.GetSheetList())

	rows, err := f.GetRows("Poste_troncons")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ExportHeader(station), rows[0])
	assert.Equal(t, []string{"14/03/2025", "09:30:05", "2501", "000041", "Hêtre", "A", "32/27", "L-12", "3", "Opérateur"}, rows[1])
}

func TestSheetName_Truncates(t *testing.T) {
	t.Parallel()

	name := SheetName(&models.Station{ID: "a_very_long_station_identifier_indeed"})
	assert.Len(t, name, 31)
}
