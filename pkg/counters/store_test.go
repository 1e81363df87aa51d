package counters

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/migrations"
	"github.com/mallobois/woodstock/pkg/zpl"
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

func TestStore_Advance(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestDB(t))
	ctx := context.Background()

	v, err := store.Advance(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = store.Get(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Other stations are untouched.
	v, err = store.Get(ctx, "sciage")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestStore_AdvanceWraps(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestDB(t))
	ctx := context.Background()

	_, err := store.Set(ctx, "troncons", 999999)
	require.NoError(t, err)

	v, err := store.Advance(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestStore_SetNormalizes(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestDB(t))
	ctx := context.Background()

	v, err := store.Set(ctx, "troncons", 1_000_041)
	require.NoError(t, err)
	assert.Equal(t, 41, v)

	got, err := store.Get(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, 41, got)
}

func TestStore_UnknownStation(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestDB(t))
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, errcodes.NotFound("Station"))
	_, err = store.Advance(ctx, "nope")
	assert.ErrorIs(t, err, errcodes.NotFound("Station"))
	_, err = store.Set(ctx, "nope", 3)
	assert.ErrorIs(t, err, errcodes.NotFound("Station"))
}

func TestStore_ConcurrentAdvancesUnderLock(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestDB(t))
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	seen := make(chan int, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				unlock := store.Lock("troncons")
				v, err := store.Advance(ctx, "troncons")
				unlock()
				assert.NoError(t, err)
				seen <- v
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[int]bool{}
	for v := range seen {
		assert.False(t, unique[v], "duplicate counter %d", v)
		unique[v] = true
	}
	assert.Len(t, unique, workers*perWorker)

	v, err := store.Get(ctx, "troncons")
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, v)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Normalize(0))
	assert.Equal(t, 999999, Normalize(999999))
	assert.Equal(t, 0, Normalize(1_000_000))
	assert.Equal(t, 999999, Normalize(-1))
}

func TestNormalize_FullCycle(t *testing.T) {
	t.Parallel()

	for _, start := range []int{0, 41, 999999} {
		v := start
		for range zpl.Modulus {
			v = Normalize(v + 1)
		}
		assert.Equal(t, start, v)
	}
}
