package stations

import (
	"github.com/mallobois/woodstock/pkg/models"
)

type FieldDefPayload struct {
	ID       string  `json:"id" validate:"required,slug" mod:"trim,lcase"`
	Label    string  `json:"label" validate:"required,max=60" mod:"trim"`
	Type     string  `json:"type" default:"text" validate:"oneof=text number date reference"`
	RefTable *string `json:"ref_table" mod:"trim"`
}

type CreateStationPayload struct {
	ID              string            `json:"id" validate:"required,max=50"`
	Name            string            `json:"name" validate:"max=100" mod:"trim"`
	Description     string            `json:"description" validate:"max=500" mod:"trim"`
	Series          string            `json:"series" validate:"max=20" mod:"trim"`
	Prefix          string            `json:"prefix" validate:"max=20" mod:"trim"`
	PrinterID       *string           `json:"printer_id"`
	DefaultCopies   *int              `json:"default_copies" validate:"omitempty,gte=0,lte=50"`
	ProducesType    *string           `json:"produces_type" mod:"trim"`
	SourceStationID *string           `json:"source_station_id" mod:"trim"`
	Fields          []FieldDefPayload `json:"fields" validate:"omitempty,dive" mod:"dive"`
}

type UpdateStationPayload struct {
	Name            *string            `json:"name" validate:"omitempty,max=100" mod:"trim"`
	Description     *string            `json:"description" validate:"omitempty,max=500" mod:"trim"`
	Series          *string            `json:"series" validate:"omitempty,max=20" mod:"trim"`
	Prefix          *string            `json:"prefix" validate:"omitempty,max=20" mod:"trim"`
	PrinterID       *string            `json:"printer_id"`
	DefaultCopies   *int               `json:"default_copies" validate:"omitempty,gte=0,lte=50"`
	ProducesType    *string            `json:"produces_type" mod:"trim"`
	SourceStationID *string            `json:"source_station_id" mod:"trim"`
	Counter         *int               `json:"counter"`
	Fields          *[]FieldDefPayload `json:"fields" validate:"omitempty,dive" mod:"dive"`
}

func toFieldDefs(payload []FieldDefPayload) []models.FieldDef {
	fields := make([]models.FieldDef, 0, len(payload))
	for _, f := range payload {
		fields = append(fields, models.FieldDef{
			ID:       f.ID,
			Label:    f.Label,
			Type:     models.FieldType(f.Type),
			RefTable: f.RefTable,
		})
	}
	return fields
}

// emptyToNil clears optional tags that were explicitly blanked out.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
