// Package audit keeps the append-only print log of every station.
package audit

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
	// seriesWindow is how many recent rows feed the source picker of a
	// downstream station.
	seriesWindow = 500
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Append writes one print log row for the station.
func (svc *Service) Append(ctx context.Context, stationID string, record *models.PrintLog) error {
	record.StationID = stationID
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.PrintedAt.IsZero() {
		record.PrintedAt = time.Now()
	}
	if record.Fields == nil {
		record.Fields = map[string]string{}
	}

	_, err := svc.db.
		NewInsert().
		Model(record).
		Exec(ctx)
	return errors.WithStack(err)
}

// History returns the latest rows of a station, newest first.
func (svc *Service) History(ctx context.Context, stationID string, limit int) ([]*models.PrintLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	logs := []*models.PrintLog{}
	err := svc.db.
		NewSelect().
		Model(&logs).
		Where("pl.station_id = ?", stationID).
		Order("pl.printed_at DESC", "pl.id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return logs, nil
}

// Series groups the station's recent numbers by series. Numbers are the
// compact form, sorted and without duplicates.
func (svc *Service) Series(ctx context.Context, stationID string) (map[string][]string, error) {
	logs, err := svc.History(ctx, stationID, seriesWindow)
	if err != nil {
		return nil, err
	}

	series := map[string][]string{}
	for _, l := range logs {
		if l.Series == "" || l.Number == "" {
			continue
		}
		if !slices.Contains(series[l.Series], l.Number) {
			series[l.Series] = append(series[l.Series], l.Number)
		}
	}
	for s := range series {
		slices.Sort(series[s])
	}
	return series, nil
}

// all returns every row of a station, oldest first.
func (svc *Service) all(ctx context.Context, stationID string) ([]*models.PrintLog, error) {
	logs := []*models.PrintLog{}
	err := svc.db.
		NewSelect().
		Model(&logs).
		Where("pl.station_id = ?", stationID).
		Order("pl.printed_at ASC", "pl.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return logs, nil
}
