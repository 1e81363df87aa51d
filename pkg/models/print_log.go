package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PrintLog is one successful print job. Rows are only ever inserted.
type PrintLog struct {
	bun.BaseModel `bun:"table:print_logs,alias:pl"`

	ID        string            `bun:",pk" json:"id"`
	StationID string            `json:"station_id"`
	PrintedAt time.Time         `json:"printed_at"`
	Series    string            `json:"series"`
	Number    string            `json:"number"`
	Essence   string            `json:"essence"`
	Quality   string            `json:"quality"`
	Thickness string            `json:"thickness"`
	Source    string            `json:"source"`
	Fields    map[string]string `bun:"type:json" json:"fields"`
	Copies    int               `json:"copies"`
	Operator  string            `json:"operator"`
}
