package models

import (
	"slices"
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    string    `bun:",nullzero" json:"username"`
	PinHash     string    `json:"-"` // Never expose the PIN hash
	DisplayName string    `json:"display_name"`
	Initials    string    `json:"initials"`
	Role        string    `json:"role"`
	Stations    []string  `bun:"type:json" json:"stations"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanUseStation checks whether the user may print from a station. Admins and
// users without an explicit station list can use every station.
func (u *User) CanUseStation(stationID string) bool {
	if u.IsAdmin() || len(u.Stations) == 0 {
		return true
	}
	return slices.Contains(u.Stations, stationID)
}
