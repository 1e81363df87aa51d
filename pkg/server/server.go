package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mallobois/woodstock/pkg/audit"
	"github.com/mallobois/woodstock/pkg/auth"
	"github.com/mallobois/woodstock/pkg/binder"
	"github.com/mallobois/woodstock/pkg/config"
	"github.com/mallobois/woodstock/pkg/counters"
	"github.com/mallobois/woodstock/pkg/database"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/metrics"
	"github.com/mallobois/woodstock/pkg/printers"
	"github.com/mallobois/woodstock/pkg/printing"
	"github.com/mallobois/woodstock/pkg/reference"
	"github.com/mallobois/woodstock/pkg/stations"
	"github.com/mallobois/woodstock/pkg/users"
	"github.com/mallobois/woodstock/pkg/zebra"
	"github.com/mallobois/woodstock/pkg/zpl"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// Options lets callers swap the printer transport and the metrics registry,
// which tests do to avoid real sockets and global state.
type Options struct {
	Transport zebra.Transport
	Registry  *prometheus.Registry
}

func New(cfg *config.Config, db *bun.DB, opts Options) (*http.Server, error) {
	e, err := newEcho(cfg, db, opts)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, opts Options) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())
	if cfg.DatabaseDebug {
		e.Use(queryLogging)
	}

	health.RegisterRoutes(e)

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	printMetrics, err := metrics.NewPrintMetrics(registry)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	transport := opts.Transport
	if transport == nil {
		transport = zebra.NewTCPTransport(cfg.PrintTimeout)
	}
	renderer := zpl.NewRenderer(cfg.OrganizationName)

	authMiddleware := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	users.RegisterRoutes(e, db, authMiddleware)

	// The stations admin API and the print pipeline must share one store so
	// a counter override can't interleave with a print.
	counterStore := counters.NewStore(db)
	stationService := stations.NewService(db, counterStore)
	printerService := printers.NewService(db)
	auditService := audit.NewService(db)
	referenceService := reference.NewService(db, reference.Options{
		StandardDryThicknesses: cfg.StandardDryThicknesses,
		TargetMoisturePercent:  cfg.TargetMoisturePercent,
	})

	pipeline := printing.New(printing.Options{
		StationSource: stationService,
		PrinterSource: printerService,
		CounterStore:  counterStore,
		Transport:     transport,
		AuditSink:     auditService,
		Renderer:      renderer,
		Metrics:       printMetrics,
		MaxCopies:     cfg.MaxCopies,
	})

	stationsGroup := e.Group("/stations")
	stationsGroup.Use(authMiddleware.Authenticate)
	stations.RegisterRoutesWithGroup(stationsGroup, stationService, authMiddleware)
	audit.RegisterRoutesWithGroup(stationsGroup, auditService, stationService, authMiddleware)

	printersGroup := e.Group("/printers")
	printersGroup.Use(authMiddleware.Authenticate)
	printers.RegisterRoutesWithGroup(printersGroup, printerService, transport, renderer, authMiddleware)

	referenceGroup := e.Group("/reference")
	referenceGroup.Use(authMiddleware.Authenticate)
	reference.RegisterRoutesWithGroup(referenceGroup, referenceService, authMiddleware)

	printGroup := e.Group("/print")
	printGroup.Use(authMiddleware.Authenticate)
	printing.RegisterRoutesWithGroup(printGroup, pipeline, authMiddleware)

	configGroup := e.Group("/config")
	configGroup.Use(authMiddleware.Authenticate)
	config.RegisterRoutesWithGroup(configGroup, cfg)

	e.RouteNotFound("/*", notFoundHandler)
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func queryLogging(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		c.SetRequest(req.WithContext(database.WithLogging(req.Context())))
		return next(c)
	}
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
