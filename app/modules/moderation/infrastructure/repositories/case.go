package casedb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Impl implements Repository using bun.
type Impl struct {
	db *bun.DB
}

// NewRepository creates a case repository over the shared pool.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

// NextCaseNumber durably allocates the next tenant-scoped case number.
// The upsert increments in the backend, so two concurrent allocations for
// the same guild can never observe the same value. Numbers are never
// rolled back outside a transaction scope; gaps are acceptable, duplicates
// are not.
func (r *Impl) NextCaseNumber(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int64, error) {
	if db == nil {
		db = r.db
	}
	counter := &CaseCounter{GuildID: guildID, LastCaseNumber: 1}
	_, err := db.NewInsert().
		Model(counter).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("last_case_number = cc.last_case_number + 1").
		Returning("last_case_number").
		Exec(ctx)
	if err != nil {
		return 0, apperrors.Persist("casedb.NextCaseNumber", err)
	}
	return counter.LastCaseNumber, nil
}

// InsertCase persists a case record. A zero CaseNumber is allocated first
// through the same db handle, so allocation and insert are atomic together
// whenever db is a transaction scope.
func (r *Impl) InsertCase(ctx context.Context, db bun.IDB, c *Case) error {
	if db == nil {
		db = r.db
	}
	if c.CaseNumber == 0 {
		n, err := r.NextCaseNumber(ctx, db, c.GuildID)
		if err != nil {
			return err
		}
		c.CaseNumber = n
	}
	if c.CaseUUID == uuid.Nil {
		c.CaseUUID = uuid.New()
	}
	if _, err := db.NewInsert().Model(c).Exec(ctx); err != nil {
		return apperrors.Persist("casedb.InsertCase", err)
	}
	return nil
}

// GetCaseByNumber returns the case or nil without error when absent.
func (r *Impl) GetCaseByNumber(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64) (*Case, error) {
	if db == nil {
		db = r.db
	}
	var c Case
	err := db.NewSelect().
		Model(&c).
		Where("guild_id = ?", guildID).
		Where("case_number = ?", caseNumber).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Persist("casedb.GetCaseByNumber", err)
	}
	return &c, nil
}

// GetMostRecentCaseInCategory returns the latest case of either polarity in
// the category for (guild, user), or nil when the user has no history there.
// "In effect" is decided by the caller from this record, never from a stored
// flag, so the history stays auditable.
func (r *Impl) GetMostRecentCaseInCategory(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, category sharedtypes.RestrictionCategory) (*Case, error) {
	if db == nil {
		db = r.db
	}
	types := category.CaseTypes()
	if len(types) == 0 {
		return nil, nil
	}
	var c Case
	err := db.NewSelect().
		Model(&c).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Where("case_type IN (?)", bun.In(types)).
		OrderExpr("case_number DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Persist("casedb.GetMostRecentCaseInCategory", err)
	}
	return &c, nil
}

// GetCasesByFilter returns matching cases ordered by case_number descending.
func (r *Impl) GetCasesByFilter(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, filter CaseFilter) ([]Case, error) {
	if db == nil {
		db = r.db
	}
	q := db.NewSelect().
		Model((*Case)(nil)).
		Where("guild_id = ?", guildID).
		OrderExpr("case_number DESC")

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.CaseType != "" {
		q = q.Where("case_type = ?", filter.CaseType)
	}
	if !filter.CreatedAfter.IsZero() {
		q = q.Where("created_at >= ?", filter.CreatedAfter)
	}
	if !filter.CreatedUntil.IsZero() {
		q = q.Where("created_at < ?", filter.CreatedUntil)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var cases []Case
	if err := q.Scan(ctx, &cases); err != nil {
		return nil, apperrors.Persist("casedb.GetCasesByFilter", err)
	}
	return cases, nil
}

// UpdateExpiry refreshes expires_at on an existing case. The only mutation
// the audit trail permits.
func (r *Impl) UpdateExpiry(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64, expiresAt *time.Time) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*Case)(nil)).
		Set("expires_at = ?", expiresAt).
		Where("guild_id = ?", guildID).
		Where("case_number = ?", caseNumber).
		Exec(ctx)
	if err != nil {
		return apperrors.Persist("casedb.UpdateExpiry", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
