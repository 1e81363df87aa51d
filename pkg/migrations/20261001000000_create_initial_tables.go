package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE printers (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				ip TEXT NOT NULL,
				port INTEGER NOT NULL DEFAULT 9100
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE stations (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				position INTEGER NOT NULL DEFAULT 0,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				series TEXT NOT NULL,
				prefix TEXT NOT NULL DEFAULT '',
				counter INTEGER NOT NULL DEFAULT 0 CHECK (counter >= 0 AND counter < 1000000),
				printer_id TEXT NOT NULL,
				default_copies INTEGER NOT NULL DEFAULT 1,
				produces_type TEXT,
				source_station_id TEXT,
				fields TEXT NOT NULL DEFAULT '[]'
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE print_logs (
				id TEXT PRIMARY KEY,
				station_id TEXT NOT NULL,
				printed_at TIMESTAMPTZ NOT NULL,
				series TEXT NOT NULL,
				number TEXT NOT NULL,
				essence TEXT NOT NULL DEFAULT '',
				quality TEXT NOT NULL DEFAULT '',
				thickness TEXT NOT NULL DEFAULT '',
				source TEXT NOT NULL DEFAULT '',
				fields TEXT NOT NULL DEFAULT '{}',
				copies INTEGER NOT NULL,
				operator TEXT NOT NULL DEFAULT ''
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		// Station history reads are always newest first for one station.
		_, err = db.Exec(`CREATE INDEX ix_print_logs_station_id_printed_at ON print_logs (station_id, printed_at DESC)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE species (
				code TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				latin_name TEXT NOT NULL DEFAULT '',
				green_density INTEGER NOT NULL,
				dry_density INTEGER NOT NULL,
				fiber_saturation REAL NOT NULL,
				tangential_shrinkage REAL NOT NULL,
				radial_shrinkage REAL NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE products (
				code TEXT PRIMARY KEY,
				name TEXT NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE qualities (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				species_code TEXT REFERENCES species (code) NOT NULL,
				product_code TEXT REFERENCES products (code) NOT NULL,
				code TEXT NOT NULL,
				name TEXT NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_qualities_species_product_code ON qualities (species_code COLLATE NOCASE, product_code COLLATE NOCASE, code COLLATE NOCASE)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				username TEXT NOT NULL,
				pin_hash TEXT NOT NULL,
				display_name TEXT NOT NULL,
				initials TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL,
				stations TEXT NOT NULL DEFAULT '[]'
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_users_username ON users (username COLLATE NOCASE)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"users", "qualities", "products", "species", "print_logs", "stations", "printers"} {
			_, err := db.Exec("DROP TABLE IF EXISTS " + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
