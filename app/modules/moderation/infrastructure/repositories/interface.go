package casedb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Repository is the persistence surface for moderation cases. Every method
// takes an explicit db argument so a transaction scope can be threaded
// through; nil falls back to the repository's own pool (implicit
// auto-committing unit).
type Repository interface {
	NextCaseNumber(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int64, error)
	InsertCase(ctx context.Context, db bun.IDB, c *Case) error
	GetCaseByNumber(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64) (*Case, error)
	GetMostRecentCaseInCategory(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, category sharedtypes.RestrictionCategory) (*Case, error)
	GetCasesByFilter(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, filter CaseFilter) ([]Case, error)
	UpdateExpiry(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64, expiresAt *time.Time) error
}
