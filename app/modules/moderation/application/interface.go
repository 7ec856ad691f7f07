package moderationservice

import (
	"context"
	"iter"
	"time"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// CaseInput carries the fields of a new moderation case. CaseNumber and
// CaseUUID are allocated by the controller.
type CaseInput struct {
	GuildID     sharedtypes.GuildID
	UserID      sharedtypes.DiscordID
	ModeratorID sharedtypes.DiscordID
	CaseType    sharedtypes.CaseType
	Reason      string
	ExpiresAt   *time.Time
}

// Service owns moderation case records and the active-restriction queries.
//
// The controller never blocks a write for policy reasons: inserting a second
// activating case while one is active is allowed, so the audit trail records
// what moderators actually did. Command layers gate on
// IsUnderActiveRestriction before acting.
type Service interface {
	NextCaseNumber(ctx context.Context, guildID sharedtypes.GuildID) (int64, error)
	InsertCase(ctx context.Context, input CaseInput) (*casedb.Case, error)
	GetCaseByNumber(ctx context.Context, guildID sharedtypes.GuildID, caseNumber int64) (*casedb.Case, error)
	IsUnderActiveRestriction(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, category sharedtypes.RestrictionCategory) (bool, error)
	GetCasesByFilter(ctx context.Context, guildID sharedtypes.GuildID, filter casedb.CaseFilter) ([]casedb.Case, error)
	IterCases(ctx context.Context, guildID sharedtypes.GuildID, filter casedb.CaseFilter) iter.Seq2[casedb.Case, error]
	ExtendCase(ctx context.Context, guildID sharedtypes.GuildID, caseNumber int64, expiresAt time.Time) error
}
