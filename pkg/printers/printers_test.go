package printers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/migrations"
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

type recordingTransport struct {
	result zebra.Result
	docs   []string
	addrs  []zebra.Address
}

func (rt *recordingTransport) Send(_ context.Context, document []byte, addr zebra.Address) zebra.Result {
	rt.docs = append(rt.docs, string(document))
	rt.addrs = append(rt.addrs, addr)
	return rt.result
}

func TestService_CreatePrinter_Limit(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	for i := 2; i <= 6; i++ {
		p, err := svc.CreatePrinter(ctx, CreatePrinterOptions{IP: "10.0.0.1", Port: 9100})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
	}

	_, err := svc.CreatePrinter(ctx, CreatePrinterOptions{IP: "10.0.0.7", Port: 9100})
	assert.ErrorIs(t, err, errcodes.Conflict("Maximum 6 imprimantes"))

	printers, err := svc.ListPrinters(ctx)
	require.NoError(t, err)
	assert.Len(t, printers, 6)
	assert.Equal(t, "zebra1", printers[0].ID)
}

func TestService_CreatePrinter_DuplicateID(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	_, err := svc.CreatePrinter(context.Background(), CreatePrinterOptions{ID: "zebra1", IP: "10.0.0.1", Port: 9100})
	assert.ErrorIs(t, err, errcodes.Conflict("ID déjà utilisé"))
}

func TestService_ResolvePrinter_FallsBackToFirst(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreatePrinter(ctx, CreatePrinterOptions{ID: "sechoir", IP: "10.0.0.2", Port: 6101})
	require.NoError(t, err)

	p, err := svc.ResolvePrinter(ctx, "sechoir")
	require.NoError(t, err)
	assert.Equal(t, 6101, p.Port)

	p, err = svc.ResolvePrinter(ctx, "gone")
	require.NoError(t, err)
	assert.Equal(t, "zebra1", p.ID)
}

func TestService_ResolvePrinter_NoPrinters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	_, err := db.Exec("DELETE FROM printers")
	require.NoError(t, err)

	_, err = NewService(db).ResolvePrinter(context.Background(), "zebra1")
	assert.ErrorIs(t, err, errcodes.NotFound("Printer"))
}

func TestService_DeletePrinter_KeepsLast(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	err := svc.DeletePrinter(ctx, "zebra1")
	assert.ErrorIs(t, err, errcodes.Conflict("Au moins une imprimante requise"))

	_, err = svc.CreatePrinter(ctx, CreatePrinterOptions{ID: "zebra2", IP: "10.0.0.2", Port: 9100})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePrinter(ctx, "zebra1"))

	err = svc.DeletePrinter(ctx, "zebra2")
	assert.ErrorIs(t, err, errcodes.Conflict("Au moins une imprimante requise"))
}

func TestHandler_Test(t *testing.T) {
	t.Parallel()

	transport := &recordingTransport{result: zebra.Result{Success: true, Message: "Envoyé à 192.168.1.67:9100"}}
	h := &handler{
		printerService: NewService(newTestDB(t)),
		transport:      transport,
		renderer:       zpl.NewRenderer("MALLO BOIS"),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/printers/zebra1/test", strings.NewReader(""))
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	c.SetParamNames("id")
	c.SetParamValues("zebra1")

	require.NoError(t, h.test(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	require.Len(t, transport.docs, 1)
	assert.Contains(t, transport.docs[0], "TEST Zebra Principale")
	assert.Equal(t, zebra.Address{Host: "192.168.1.67", Port: 9100}, transport.addrs[0])
}

func TestHandler_Test_Failure(t *testing.T) {
	t.Parallel()

	transport := &recordingTransport{result: zebra.Result{Message: "Connexion refusée", Failure: zebra.FailureRefused}}
	h := &handler{
		printerService: NewService(newTestDB(t)),
		transport:      transport,
		renderer:       zpl.NewRenderer("MALLO BOIS"),
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/printers/zebra1/test", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("zebra1")

	err := h.test(c)
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadGateway, codeErr.HTTPCode)
	assert.Equal(t, "Connexion refusée", codeErr.Message)
}
