package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mallobois/woodstock/pkg/config"
	"github.com/mallobois/woodstock/pkg/database"
	"github.com/mallobois/woodstock/pkg/migrations"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	var db *bun.DB
	newMigrator := func() *migrate.Migrator {
		return migrations.NewMigrator(db)
	}

	app := &cli.App{
		Name:  "migrations",
		Usage: "manage the woodstock database schema and seed data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the woodstock.yaml config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		// The database is opened lazily so --help works without a config.
		Before: func(c *cli.Context) error {
			if path := c.String("config"); path != "" {
				if err := os.Setenv("CONFIG_FILE", path); err != nil {
					return err
				}
			}
			cfg, err := config.New()
			if err != nil {
				return err
			}
			db, err = database.New(cfg)
			return err
		},
		After: func(*cli.Context) error {
			if db == nil {
				return nil
			}
			return db.Close()
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return newMigrator().Init(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					group, err := newMigrator().Migrate(c.Context)
					if err != nil {
						return err
					}

					if group.ID == 0 {
						fmt.Println("There are no new migrations to run")
						return nil
					}

					fmt.Printf("Migrated to %s\n", group)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					group, err := newMigrator().Rollback(c.Context)
					if err != nil {
						return err
					}

					if group.ID == 0 {
						fmt.Println("There are no groups to roll back")
						return nil
					}

					fmt.Printf("Rolled back %s\n", group)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), "_")
					if name == "" {
						return cli.Exit("a migration name is required", 1)
					}
					mf, err := newMigrator().CreateGoMigration(
						c.Context,
						name,
						migrate.WithGoTemplate(migrationTemplate),
					)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)

					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					ms, err := newMigrator().MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("Migrations: %s\n", ms)
					fmt.Printf("Unapplied migrations: %s\n", ms.Unapplied())
					fmt.Printf("Last migration group: %s\n", ms.LastGroup())

					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
`
