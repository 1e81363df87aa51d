// Package counters owns the per-station label counters. Counters live on the
// stations table and wrap at one million.
package counters

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/mallobois/woodstock/pkg/zpl"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Store struct {
	db bun.IDB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(db bun.IDB) *Store {
	return &Store{
		db:    db,
		locks: map[string]*sync.Mutex{},
	}
}

// Lock enters the critical section for one station and returns the function
// that leaves it. Prints on different stations never wait on each other.
func (s *Store) Lock(stationID string) (unlock func()) {
	s.mu.Lock()
	m, ok := s.locks[stationID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[stationID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Store) Get(ctx context.Context, stationID string) (int, error) {
	var counter int
	err := s.db.
		NewSelect().
		Model((*models.Station)(nil)).
		Column("s.counter").
		Where("s.id = ?", stationID).
		Scan(ctx, &counter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errcodes.NotFound("Station")
		}
		return 0, errors.WithStack(err)
	}
	return counter, nil
}

// Advance moves the counter one step forward and returns the new value. The
// caller must hold the station lock.
func (s *Store) Advance(ctx context.Context, stationID string) (int, error) {
	var counter int
	err := s.db.
		NewUpdate().
		Model((*models.Station)(nil)).
		Set("counter = (counter + 1) % ?", zpl.Modulus).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", stationID).
		Returning("counter").
		Scan(ctx, &counter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errcodes.NotFound("Station")
		}
		return 0, errors.WithStack(err)
	}
	return counter, nil
}

// Set overrides the counter, reduced modulo one million. It takes the station
// lock itself so an override never lands in the middle of a print.
func (s *Store) Set(ctx context.Context, stationID string, value int) (int, error) {
	unlock := s.Lock(stationID)
	defer unlock()

	value = Normalize(value)
	res, err := s.db.
		NewUpdate().
		Model((*models.Station)(nil)).
		Set("counter = ?", value).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", stationID).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if n == 0 {
		return 0, errcodes.NotFound("Station")
	}
	return value, nil
}

// Normalize maps any integer onto the counter range [0, 1000000).
func Normalize(value int) int {
	value %= zpl.Modulus
	if value < 0 {
		value += zpl.Modulus
	}
	return value
}
