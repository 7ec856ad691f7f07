// Package bundb owns the single live database session for the process and
// the transaction scope primitive every controller operation runs under.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	guildconfigdb "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories"
	levelsdb "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories"
	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/config"
)

// Service is the connection lifecycle manager: one per process, created at
// startup, torn down at shutdown. All controllers share its pool.
type Service struct {
	cfg config.PostgresConfig

	mu sync.Mutex
	db *bun.DB
}

// New returns an unconnected Service.
func New(cfg config.PostgresConfig) *Service {
	return &Service{cfg: cfg}
}

// Connect establishes the backend session. Idempotent: calling it while
// already connected is a no-op success.
func (s *Service) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(s.cfg.DSN)))
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*casedb.Case)(nil),
		(*casedb.CaseCounter)(nil),
		(*guildconfigdb.GuildConfig)(nil),
		(*guildconfigdb.PermLevelRole)(nil),
		(*levelsdb.LevelRecord)(nil),
	)

	s.db = db
	return nil
}

// Disconnect releases the session. Safe to call when not connected.
func (s *Service) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// DB returns the live connection pool, or ErrNotConnected.
func (s *Service) DB() (*bun.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, apperrors.ErrNotConnected
	}
	return s.db, nil
}

type txKey struct{}

// TxFromContext returns the transaction scope carried by ctx, if any.
// Repositories accept the result directly as their db argument: nil means
// the operation runs in an implicit auto-committing unit.
func TxFromContext(ctx context.Context) bun.IDB {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	if !ok {
		return nil
	}
	return tx
}

// WithTransaction runs fn inside a transaction scope and guarantees exactly
// one commit-or-rollback on every exit path, including panic and context
// cancellation.
//
// Nesting policy: a nested call joins the scope already open on ctx rather
// than opening a second one; the outermost call owns commit and rollback.
// Composition is chosen over rejecting nesting because moderation flows call
// shared sub-operations that open scopes themselves.
//
// Scopes run at read-committed isolation. Flows that must not race the
// active-restriction check against concurrent inserts run both inside one
// scope; nothing stronger is promised.
func (s *Service) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(ctx, tx)
	}

	db, err := s.DB()
	if err != nil {
		return err
	}

	opts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	return db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx), tx)
	})
}
