package testutils

import (
	"context"
	"fmt"
	"log"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/config"
	"github.com/allthingslinux/tux-sub001/db/bundb"
	"github.com/allthingslinux/tux-sub001/integration_tests/containers"
)

// TestEnvironment owns the Postgres container and the connected lifecycle
// service shared by one test package.
type TestEnvironment struct {
	Ctx       context.Context
	DB        *bun.DB
	DBService *bundb.Service

	container *postgres.PostgresContainer
}

// NewTestEnvironment starts Postgres, connects the lifecycle service and
// applies all module migrations.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	t.Helper()
	ctx := context.Background()

	container, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres: %w", err)
	}

	svc := bundb.New(config.PostgresConfig{DSN: dsn})
	if err := svc.Connect(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := svc.Migrate(ctx); err != nil {
		_ = svc.Disconnect()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	db, err := svc.DB()
	if err != nil {
		_ = svc.Disconnect()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &TestEnvironment{
		Ctx:       ctx,
		DB:        db,
		DBService: svc,
		container: container,
	}, nil
}

// Reset truncates every domain table so each test starts from a clean slate.
func (e *TestEnvironment) Reset(ctx context.Context) error {
	tables := []string{
		"cases",
		"case_counters",
		"guild_perm_level_roles",
		"guild_configs",
		"levels",
	}
	for _, table := range tables {
		if _, err := e.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// Close tears down the service and the container.
func (e *TestEnvironment) Close() {
	if err := e.DBService.Disconnect(); err != nil {
		log.Printf("disconnect failed: %v", err)
	}
	if err := e.container.Terminate(context.Background()); err != nil {
		log.Printf("container terminate failed: %v", err)
	}
}
