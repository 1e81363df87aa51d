package printing

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/audit"
	"github.com/mallobois/woodstock/pkg/binder"
	"github.com/mallobois/woodstock/pkg/counters"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/migrations"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/mallobois/woodstock/pkg/printers"
	"github.com/mallobois/woodstock/pkg/stations"
	"github.com/mallobois/woodstock/pkg/zebra"
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

type integration struct {
	db        *bun.DB
	echo      *echo.Echo
	handler   *handler
	stations  *stations.Service
	audit     *audit.Service
	transport *scriptedTransport
}

func newIntegration(t *testing.T, results ...zebra.Result) *integration {
	t.Helper()

	db := newTestDB(t)
	store := counters.NewStore(db)
	stationService := stations.NewService(db, store)
	auditService := audit.NewService(db)
	transport := &scriptedTransport{results: results}

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return &integration{
		db:   db,
		echo: e,
		handler: &handler{pipeline: New(Options{
			StationSource: stationService,
			PrinterSource: printers.NewService(db),
			CounterStore:  store,
			Transport:     transport,
			AuditSink:     auditService,
			Renderer:      zpl.NewRenderer("MALLO BOIS"),
		})},
		stations:  stationService,
		audit:     auditService,
		transport: transport,
	}
}

func (it *integration) post(t *testing.T, stationID, payload string, user *models.User) (*httptest.ResponseRecorder, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/print/"+stationID, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	c := it.echo.NewContext(req, rr)
	c.SetParamNames("station")
	c.SetParamValues(stationID)
	if user != nil {
		c.Set("user", user)
	}

	err := it.handler.print(c)
	if err != nil {
		it.echo.HTTPErrorHandler(err, c)
	}
	return rr, err
}

func operator() *models.User {
	return &models.User{ID: 2, Username: "operateur", DisplayName: "Opérateur", Role: models.RoleOperator}
}

func TestHandler_Print(t *testing.T) {
	t.Parallel()
	it := newIntegration(t)
	ctx := context.Background()

	err := it.stations.UpdateStation(ctx, mustStation(t, it, "troncons"), stations.UpdateStationOptions{Counter: ptr(41)})
	require.NoError(t, err)

	rr, err := it.post(t, "troncons", `{"fields":{"essence":"Hêtre","qualite":"A","epaisseur":" 32/27 "},"copies":3}`, operator())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := Response{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "N° 00 00 41 (3 copies)", resp.Message)
	assert.Equal(t, 42, resp.Counter)

	station := mustStation(t, it, "troncons")
	assert.Equal(t, 42, station.Counter)

	history, err := it.audit.History(ctx, "troncons", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "000041", history[0].Number)
	assert.Equal(t, "32/27", history[0].Thickness)
	assert.Equal(t, 3, history[0].Copies)
	assert.Equal(t, "Opérateur", history[0].Operator)
	assert.NotEmpty(t, history[0].ID)
}

func TestHandler_PrintFailure(t *testing.T) {
	t.Parallel()
	it := newIntegration(t, zebra.Result{Message: "Timeout connexion", Failure: zebra.FailureTimeout})

	rr, err := it.post(t, "troncons", `{"copies":2}`, operator())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Timeout connexion", body["message"])

	assert.Equal(t, 0, mustStation(t, it, "troncons").Counter)
	history, err := it.audit.History(context.Background(), "troncons", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHandler_PrintUnknownStation(t *testing.T) {
	t.Parallel()
	it := newIntegration(t)

	rr, err := it.post(t, "nope", `{}`, operator())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, it.transport.sent)
}

func TestHandler_PrintWithoutUserLogsUnknownOperator(t *testing.T) {
	t.Parallel()
	it := newIntegration(t)

	rr, err := it.post(t, "sciage", `{"print":false,"source":"TRO-2501-000041"}`, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, it.transport.sent)

	history, err := it.audit.History(context.Background(), "sciage", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, UnknownOperator, history[0].Operator)
	assert.Equal(t, "TRO-2501-000041", history[0].Source)
	assert.Equal(t, 0, history[0].Copies)

	series, err := it.audit.Series(context.Background(), "sciage")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"2501": {"000000"}}, series)
}

func TestPipeline_ConcurrentRequestsGetDistinctNumbers(t *testing.T) {
	t.Parallel()
	it := newIntegration(t)
	pipeline := it.handler.pipeline

	var wg sync.WaitGroup
	numbers := make(chan string, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := pipeline.Print(context.Background(), Request{StationID: "troncons", Copies: ptr(1)})
			if assert.NoError(t, err) {
				numbers <- resp.Compact
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for n := range numbers {
		assert.False(t, seen[n], n)
		seen[n] = true
	}
	assert.Len(t, seen, 20)
	assert.Equal(t, 20, mustStation(t, it, "troncons").Counter)
	assert.Len(t, it.transport.sent, 20)
}

func mustStation(t *testing.T, it *integration, id string) *models.Station {
	t.Helper()
	station, err := it.stations.RetrieveStation(context.Background(), id)
	require.NoError(t, err)
	return station
}
