package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Field types a station can declare for its custom label fields.
const (
	FieldTypeText      FieldType = "text"
	FieldTypeNumber    FieldType = "number"
	FieldTypeDate      FieldType = "date"
	FieldTypeReference FieldType = "reference"
)

type FieldType string

// FieldDef describes one custom input on a station. RefTable names the
// reference table a FieldTypeReference field draws its values from.
type FieldDef struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	RefTable *string   `json:"ref_table,omitempty"`
}

type Station struct {
	bun.BaseModel `bun:"table:stations,alias:s"`

	ID              string     `bun:",pk" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Position        int        `json:"position"`
	Name            string     `bun:",nullzero" json:"name"`
	Description     string     `json:"description"`
	Series          string     `json:"series"`
	Prefix          string     `json:"prefix"`
	Counter         int        `json:"counter"`
	PrinterID       string     `json:"printer_id"`
	DefaultCopies   int        `json:"default_copies"`
	ProducesType    *string    `json:"produces_type,omitempty"`
	SourceStationID *string    `json:"source_station_id,omitempty"`
	Fields          []FieldDef `bun:"type:json" json:"fields"`
}

// ProducesProduct reports whether labels from this station carry the
// essence, quality and thickness line.
func (s *Station) ProducesProduct() bool {
	return s.ProducesType != nil && *s.ProducesType != ""
}

// HasSource reports whether this station consumes labels printed by an
// upstream station.
func (s *Station) HasSource() bool {
	return s.SourceStationID != nil && *s.SourceStationID != ""
}
