package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MaxPrinters is how many printers the installation supports.
const MaxPrinters = 6

type Printer struct {
	bun.BaseModel `bun:"table:printers,alias:p"`

	ID        string    `bun:",pk" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	IP        string    `bun:"ip" json:"ip"`
	Port      int       `json:"port"`
}
