package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	guildconfigmigrations "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories/migrations"
	levelsmigrations "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories/migrations"
	moderationmigrations "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories/migrations"
	"github.com/allthingslinux/tux-sub001/config"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	migrators := map[string]*migrate.Migrator{
		"guildconfig": migrate.NewMigrator(db, guildconfigmigrations.Migrations),
		"moderation":  migrate.NewMigrator(db, moderationmigrations.Migrations),
		"levels":      migrate.NewMigrator(db, levelsmigrations.Migrations),
	}

	app := &cli.App{
		Name:  "bun",
		Usage: "manage database migrations for the guild data layer",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMultiModuleDBCommand(migrators map[string]*migrate.Migrator) *cli.Command {
	// Stable order so "migrate" applies modules deterministically.
	order := []string{"guildconfig", "moderation", "levels"}

	forEach := func(c *cli.Context, fn func(name string, m *migrate.Migrator) error) error {
		module := c.String("module")
		for _, name := range order {
			if module != "" && module != name {
				continue
			}
			if err := fn(name, migrators[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	}

	moduleFlag := &cli.StringFlag{
		Name:  "module",
		Usage: "restrict the command to a single module (" + strings.Join(order, ", ") + ")",
	}

	return &cli.Command{
		Name:  "db",
		Usage: "database migrations",
		Flags: []cli.Flag{moduleFlag},
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return forEach(c, func(name string, m *migrate.Migrator) error {
						return m.Init(c.Context)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					return forEach(c, func(name string, m *migrate.Migrator) error {
						group, err := m.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("%s: no new migrations\n", name)
							return nil
						}
						fmt.Printf("%s: migrated to %s\n", name, group)
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return forEach(c, func(name string, m *migrate.Migrator) error {
						group, err := m.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("%s: no groups to roll back\n", name)
							return nil
						}
						fmt.Printf("%s: rolled back %s\n", name, group)
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create a Go migration in the given module",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					module := c.String("module")
					m, ok := migrators[module]
					if !ok {
						return fmt.Errorf("create_go requires --module, one of: %s", strings.Join(order, ", "))
					}
					mf, err := m.CreateGoMigration(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					fmt.Printf("created migration %s (%s)\n", mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations in the given module",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					module := c.String("module")
					m, ok := migrators[module]
					if !ok {
						return fmt.Errorf("create_sql requires --module, one of: %s", strings.Join(order, ", "))
					}
					files, err := m.CreateSQLMigrations(c.Context, c.Args().Get(0))
					if err != nil {
						return err
					}
					for _, mf := range files {
						fmt.Printf("created migration %s (%s)\n", mf.Name, mf.Path)
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: func(c *cli.Context) error {
					return forEach(c, func(name string, m *migrate.Migrator) error {
						ms, err := m.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("%s: migrations: %s\n", name, ms)
						fmt.Printf("%s: unapplied: %s\n", name, ms.Unapplied())
						fmt.Printf("%s: last group: %s\n", name, ms.LastGroup())
						return nil
					})
				},
			},
		},
	}
}
