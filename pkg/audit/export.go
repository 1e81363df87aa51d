package audit

import (
	"context"
	"io"

	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	exportDateLayout = "02/01/2006"
	exportTimeLayout = "15:04:05"
	// Excel refuses sheet names longer than this.
	maxSheetName = 31
)

// ExportHeader returns the column titles of a station's log sheet. The
// product and source columns only exist for stations that use them.
func ExportHeader(station *models.Station) []string {
	header := []string{"Date", "Heure", "Série", "Numéro"}
	if station.ProducesProduct() {
		header = append(header, "Essence", "Qualité", "Épaisseur")
	}
	if station.HasSource() {
		header = append(header, "Source")
	}
	for _, f := range station.Fields {
		header = append(header, f.Label)
	}
	return append(header, "Copies", "Opérateur")
}

func exportRow(station *models.Station, l *models.PrintLog) []any {
	printed := l.PrintedAt.Local()
	row := []any{
		printed.Format(exportDateLayout),
		printed.Format(exportTimeLayout),
		l.Series,
		l.Number,
	}
	if station.ProducesProduct() {
		row = append(row, l.Essence, l.Quality, l.Thickness)
	}
	if station.HasSource() {
		row = append(row, l.Source)
	}
	for _, f := range station.Fields {
		row = append(row, l.Fields[f.ID])
	}
	return append(row, l.Copies, l.Operator)
}

// SheetName is the worksheet a station's log is written to.
func SheetName(station *models.Station) string {
	name := "Poste_" + station.ID
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// Export writes the station's whole print log as an xlsx workbook, oldest
// row first.
func (svc *Service) Export(ctx context.Context, station *models.Station, w io.Writer) error {
	logs, err := svc.all(ctx, station.ID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(station)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return errors.WithStack(err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.WithStack(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	header := ExportHeader(station)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.WithStack(err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return errors.WithStack(err)
	}

	for i, l := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WithStack(err)
		}
		row := exportRow(station, l)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.WithStack(err)
	}

	_, err = f.WriteTo(w)
	return errors.WithStack(err)
}
