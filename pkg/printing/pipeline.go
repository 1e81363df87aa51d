// Package printing turns a print request from a station screen into a
// physical label, a print log row and one step of the station counter.
package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/metrics"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/mallobois/woodstock/pkg/zebra"
	"github.com/mallobois/woodstock/pkg/zpl"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Keys of the product line values in a request's fields.
const (
	FieldEssence   = "essence"
	FieldQuality   = "qualite"
	FieldThickness = "epaisseur"
)

// UnknownOperator is logged when a request carries no operator name.
const UnknownOperator = "Inconnu"

type StationSource interface {
	RetrieveStation(ctx context.Context, id string) (*models.Station, error)
}

type PrinterSource interface {
	// ResolvePrinter returns the printer with the given id, or the first
	// configured printer if there is no such id.
	ResolvePrinter(ctx context.Context, id string) (*models.Printer, error)
}

type CounterStore interface {
	Lock(stationID string) (unlock func())
	Get(ctx context.Context, stationID string) (int, error)
	Advance(ctx context.Context, stationID string) (int, error)
}

type AuditSink interface {
	Append(ctx context.Context, stationID string, record *models.PrintLog) error
}

type Options struct {
	StationSource StationSource
	PrinterSource PrinterSource
	CounterStore  CounterStore
	Transport     zebra.Transport
	AuditSink     AuditSink
	Renderer      *zpl.Renderer
	Metrics       *metrics.PrintMetrics
	MaxCopies     int
	Now           func() time.Time
}

type Request struct {
	StationID string
	Fields    map[string]string

	// Copies overrides the station's default copy count.
	Copies *int

	// Print set to false logs the label and consumes a number without
	// sending anything to the printer.
	Print *bool

	Source   string
	Operator string
}

type Response struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Number        string `json:"number"`
	Compact       string `json:"compact"`
	Counter       int    `json:"counter"`
	CopiesPrinted int    `json:"copies_printed"`
}

// PrintError is returned when printing was requested and not a single copy
// reached the printer. Nothing was logged and the counter didn't move.
type PrintError struct {
	Message string
	Failure zebra.Failure
	Counter int
}

func (e *PrintError) Error() string {
	return e.Message
}

func (e *PrintError) Unwrap() error {
	return errcodes.PrintFailed(e.Message)
}

type Pipeline struct {
	stations  StationSource
	printers  PrinterSource
	counters  CounterStore
	transport zebra.Transport
	audit     AuditSink
	renderer  *zpl.Renderer
	metrics   *metrics.PrintMetrics
	maxCopies int
	now       func() time.Time
}

func New(opts Options) *Pipeline {
	p := &Pipeline{
		stations:  opts.StationSource,
		printers:  opts.PrinterSource,
		counters:  opts.CounterStore,
		transport: opts.Transport,
		audit:     opts.AuditSink,
		renderer:  opts.Renderer,
		metrics:   opts.Metrics,
		maxCopies: opts.MaxCopies,
		now:       opts.Now,
	}
	if p.maxCopies <= 0 {
		p.maxCopies = 50
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Print runs one print request to completion. The number on the label is the
// station counter before the request, and the counter moves forward exactly
// once per logged request no matter how many copies were sent.
func (p *Pipeline) Print(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromContext(ctx)
	start := p.now()

	station, err := p.stations.RetrieveStation(ctx, req.StationID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	unlock := p.counters.Lock(station.ID)
	defer unlock()

	// The station snapshot may predate a concurrent print, so the counter is
	// read again inside the critical section.
	current, err := p.counters.Get(ctx, station.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	copies := p.effectiveCopies(station, req.Copies)
	label := p.renderer.Render(zpl.Input{
		Station: snapshot(station, current),
		Values:  req.Fields,
		Source:  req.Source,
		Date:    start,
	})

	printed := 0
	partial := false
	outcome := metrics.OutcomeLogOnly
	if shouldPrint(req.Print) && copies > 0 {
		printer, err := p.printers.ResolvePrinter(ctx, station.PrinterID)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		var last zebra.Result
		printed, last = p.sendCopies(ctx, printer, []byte(label.Document), copies)
		p.metrics.RecordCopies(station.ID, printer.ID, printed)

		if printed == 0 {
			log.Warn("print failed", logger.Data{
				"station_id": station.ID,
				"printer_id": printer.ID,
				"failure":    string(last.Failure),
				"message":    last.Message,
			})
			p.metrics.RecordRequest(station.ID, metrics.OutcomeFailed, p.now().Sub(start))
			return nil, &PrintError{Message: last.Message, Failure: last.Failure, Counter: current}
		}

		outcome = metrics.OutcomeSuccess
		if printed < copies {
			partial = true
			outcome = metrics.OutcomePartial
			log.Warn("partial print", logger.Data{
				"station_id": station.ID,
				"printer_id": printer.ID,
				"requested":  copies,
				"printed":    printed,
				"message":    last.Message,
			})
		}
	}

	record := p.buildRecord(station, req, label, printed, start)
	if err := p.audit.Append(ctx, station.ID, record); err != nil {
		// The label is already on the pallet; a missing log row must not
		// make the operator print it again.
		p.metrics.RecordAuditError(station.ID)
		log.Err(err).Error("failed to append print log", logger.Data{
			"station_id": station.ID,
			"number":     label.Compact,
		})
	}

	next, err := p.counters.Advance(ctx, station.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	p.metrics.RecordRequest(station.ID, outcome, p.now().Sub(start))

	message := "N° " + label.Number
	switch {
	case partial && printed == 1:
		message += " (1 copie)"
	case partial || printed > 1:
		message += fmt.Sprintf(" (%d copies)", printed)
	}

	return &Response{
		Success:       true,
		Message:       message,
		Number:        label.Number,
		Compact:       label.Compact,
		Counter:       next,
		CopiesPrinted: printed,
	}, nil
}

// sendCopies sends the document once per copy and stops at the first
// failure, so a jammed printer doesn't produce a confusing partial run.
func (p *Pipeline) sendCopies(ctx context.Context, printer *models.Printer, document []byte, copies int) (int, zebra.Result) {
	addr := zebra.Address{Host: printer.IP, Port: printer.Port}

	printed := 0
	var last zebra.Result
	for i := 0; i < copies; i++ {
		last = p.transport.Send(ctx, document, addr)
		if !last.Success {
			p.metrics.RecordTransportFailure(printer.ID, string(last.Failure))
			break
		}
		printed++
	}
	return printed, last
}

func (p *Pipeline) effectiveCopies(station *models.Station, requested *int) int {
	copies := station.DefaultCopies
	if requested != nil {
		copies = *requested
	}
	return min(max(copies, 0), p.maxCopies)
}

func (p *Pipeline) buildRecord(station *models.Station, req Request, label zpl.Label, printed int, at time.Time) *models.PrintLog {
	fields := map[string]string{}
	for _, f := range station.Fields {
		if v := req.Fields[f.ID]; v != "" {
			fields[f.ID] = v
		}
	}

	operator := req.Operator
	if operator == "" {
		operator = UnknownOperator
	}

	record := &models.PrintLog{
		StationID: station.ID,
		PrintedAt: at,
		Series:    station.Series,
		Number:    label.Compact,
		Source:    req.Source,
		Fields:    fields,
		Copies:    printed,
		Operator:  operator,
	}
	if station.ProducesProduct() {
		record.Essence = req.Fields[FieldEssence]
		record.Quality = req.Fields[FieldQuality]
		record.Thickness = req.Fields[FieldThickness]
	}
	return record
}

func snapshot(station *models.Station, counter int) zpl.Station {
	s := zpl.Station{
		Series:  station.Series,
		Prefix:  station.Prefix,
		Counter: counter,
		Fields:  make([]zpl.Field, 0, len(station.Fields)),
	}
	if station.ProducesType != nil {
		s.ProducesType = *station.ProducesType
	}
	if station.SourceStationID != nil {
		s.SourceStationID = *station.SourceStationID
	}
	for _, f := range station.Fields {
		s.Fields = append(s.Fields, zpl.Field{ID: f.ID, Label: f.Label})
	}
	return s
}

func shouldPrint(flag *bool) bool {
	return flag == nil || *flag
}
