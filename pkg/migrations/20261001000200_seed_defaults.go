package migrations

import (
	"context"
	"time"

	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		now := time.Now()

		printer := &models.Printer{
			ID:        "zebra1",
			CreatedAt: now,
			UpdatedAt: now,
			Name:      "Zebra Principale",
			IP:        "192.168.1.67",
			Port:      9100,
		}
		_, err := db.NewInsert().Model(printer).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		tro := "TRO"
		pqt := "PQT"
		upstream := "troncons"
		stations := []*models.Station{
			{
				ID:            "troncons",
				CreatedAt:     now,
				UpdatedAt:     now,
				Position:      1,
				Name:          "Tronçons",
				Description:   "Étiquetage des tronçons",
				Series:        "2501",
				Prefix:        "TRO-",
				PrinterID:     printer.ID,
				DefaultCopies: 1,
				ProducesType:  &tro,
				Fields:        []models.FieldDef{},
			},
			{
				ID:              "sciage",
				CreatedAt:       now,
				UpdatedAt:       now,
				Position:        2,
				Name:            "Sciage",
				Description:     "Découpe et mise en paquets",
				Series:          "2501",
				Prefix:          "SCI-",
				PrinterID:       printer.ID,
				DefaultCopies:   1,
				ProducesType:    &pqt,
				SourceStationID: &upstream,
				Fields:          []models.FieldDef{},
			},
		}
		_, err = db.NewInsert().Model(&stations).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		users := []struct {
			username, pin, name, initials, role string
		}{
			{"admin", "123456", "Administrateur", "AD", models.RoleAdmin},
			{"operateur", "111111", "Opérateur", "OP", models.RoleOperator},
		}
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.pin), bcrypt.DefaultCost)
			if err != nil {
				return errors.WithStack(err)
			}
			user := &models.User{
				CreatedAt:   now,
				UpdatedAt:   now,
				Username:    u.username,
				PinHash:     string(hash),
				DisplayName: u.name,
				Initials:    u.initials,
				Role:        u.role,
				Stations:    []string{},
			}
			_, err = db.NewInsert().Model(user).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"users", "stations", "printers"} {
			_, err := db.Exec("DELETE FROM " + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
