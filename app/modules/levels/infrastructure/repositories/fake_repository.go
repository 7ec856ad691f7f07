package levelsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	GetRecordFn       func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*LevelRecord, error)
	UpsertRecordFn    func(ctx context.Context, db bun.IDB, rec *LevelRecord) error
	SetBlacklistedFn  func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, blacklisted bool) error
	GetRecordsBatchFn func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) ([]LevelRecord, error)
	ResetRecordFn     func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) error
}

func (f *FakeRepository) GetRecord(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*LevelRecord, error) {
	if f.GetRecordFn != nil {
		return f.GetRecordFn(ctx, db, guildID, userID)
	}
	return nil, nil
}

func (f *FakeRepository) UpsertRecord(ctx context.Context, db bun.IDB, rec *LevelRecord) error {
	if f.UpsertRecordFn != nil {
		return f.UpsertRecordFn(ctx, db, rec)
	}
	return nil
}

func (f *FakeRepository) SetBlacklisted(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, blacklisted bool) error {
	if f.SetBlacklistedFn != nil {
		return f.SetBlacklistedFn(ctx, db, guildID, userID, blacklisted)
	}
	return nil
}

func (f *FakeRepository) GetRecordsBatch(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) ([]LevelRecord, error) {
	if f.GetRecordsBatchFn != nil {
		return f.GetRecordsBatchFn(ctx, db, guildID, userIDs)
	}
	return nil, nil
}

func (f *FakeRepository) ResetRecord(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) error {
	if f.ResetRecordFn != nil {
		return f.ResetRecordFn(ctx, db, guildID, userID)
	}
	return nil
}
