package levelsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Repository is the persistence surface for level records.
type Repository interface {
	GetRecord(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*LevelRecord, error)
	UpsertRecord(ctx context.Context, db bun.IDB, rec *LevelRecord) error
	SetBlacklisted(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, blacklisted bool) error
	GetRecordsBatch(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) ([]LevelRecord, error)
	ResetRecord(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) error
}
