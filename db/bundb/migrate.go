package bundb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	guildconfigmigrations "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories/migrations"
	levelsmigrations "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories/migrations"
	moderationmigrations "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories/migrations"
)

// Migrate runs all module migrations in a deterministic order.
func (s *Service) Migrate(ctx context.Context) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	return RunMigrations(ctx, db)
}

// RunMigrations applies every module's migrations against db.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, guildconfigmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"guildconfig", guildconfigmigrations.Migrations},
		{"moderation", moderationmigrations.Migrations},
		{"levels", levelsmigrations.Migrations},
	}

	for _, mod := range orderedModules {
		migrator := migrate.NewMigrator(db, mod.migrations)
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}
