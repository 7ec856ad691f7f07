package levelsdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Impl implements Repository using bun.
type Impl struct {
	db *bun.DB
}

// NewRepository creates a levels repository over the shared pool.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

// GetRecord returns the member's record, or nil without error when the
// member has never earned XP in the guild.
func (r *Impl) GetRecord(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*LevelRecord, error) {
	if db == nil {
		db = r.db
	}
	var rec LevelRecord
	err := db.NewSelect().
		Model(&rec).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Persist("levelsdb.GetRecord", err)
	}
	return &rec, nil
}

// UpsertRecord writes the full record, creating it on first award.
func (r *Impl) UpsertRecord(ctx context.Context, db bun.IDB, rec *LevelRecord) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(rec).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("xp = EXCLUDED.xp").
		Set("level = EXCLUDED.level").
		Set("last_message_at = EXCLUDED.last_message_at").
		Set("blacklisted = EXCLUDED.blacklisted").
		Exec(ctx)
	if err != nil {
		return apperrors.Persist("levelsdb.UpsertRecord", err)
	}
	return nil
}

// SetBlacklisted flips the blacklist flag, creating the record if absent so
// a member can be blacklisted before their first message.
func (r *Impl) SetBlacklisted(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, blacklisted bool) error {
	if db == nil {
		db = r.db
	}
	rec := &LevelRecord{GuildID: guildID, UserID: userID, Blacklisted: blacklisted}
	_, err := db.NewInsert().
		Model(rec).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("blacklisted = EXCLUDED.blacklisted").
		Exec(ctx)
	if err != nil {
		return apperrors.Persist("levelsdb.SetBlacklisted", err)
	}
	return nil
}

// GetRecordsBatch fetches all requested members in a single query.
func (r *Impl) GetRecordsBatch(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) ([]LevelRecord, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	if db == nil {
		db = r.db
	}
	var recs []LevelRecord
	err := db.NewSelect().
		Model(&recs).
		Where("guild_id = ?", guildID).
		Where("user_id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	if err != nil {
		return nil, apperrors.Persist("levelsdb.GetRecordsBatch", err)
	}
	return recs, nil
}

// ResetRecord zeroes a member's XP and level. The row survives; history of
// having had a record is not erased by a reset.
func (r *Impl) ResetRecord(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*LevelRecord)(nil)).
		Set("xp = 0").
		Set("level = 0").
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return apperrors.Persist("levelsdb.ResetRecord", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNoRowsAffected
	}
	return nil
}
