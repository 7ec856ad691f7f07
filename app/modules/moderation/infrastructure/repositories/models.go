package casedb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Case is an append-only audit record of a moderation action. Rows are never
// deleted; only ExpiresAt may change after creation (explicit extension).
type Case struct {
	bun.BaseModel `bun:"table:cases,alias:c"`

	GuildID     sharedtypes.GuildID   `bun:"guild_id,pk,notnull,type:varchar(20)"`
	CaseNumber  int64                 `bun:"case_number,pk,notnull"`
	CaseUUID    uuid.UUID             `bun:"case_uuid,notnull,type:uuid,unique"`
	UserID      sharedtypes.DiscordID `bun:"user_id,notnull,type:varchar(20)"`
	ModeratorID sharedtypes.DiscordID `bun:"moderator_id,notnull,type:varchar(20)"`
	CaseType    sharedtypes.CaseType  `bun:"case_type,notnull,type:varchar(16)"`
	Reason      string                `bun:"reason,type:text"`
	CreatedAt   time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	ExpiresAt   *time.Time            `bun:"expires_at,nullzero"`
}

// CaseCounter backs the tenant-scoped case number sequence. It exists so
// allocation can be a single atomic upsert in the backend; the counter is
// never read-then-written from Go.
type CaseCounter struct {
	bun.BaseModel `bun:"table:case_counters,alias:cc"`

	GuildID        sharedtypes.GuildID `bun:"guild_id,pk,notnull,type:varchar(20)"`
	LastCaseNumber int64               `bun:"last_case_number,notnull,default:0"`
}

// CaseFilter narrows GetCasesByFilter results. Zero values match everything.
type CaseFilter struct {
	UserID       sharedtypes.DiscordID
	CaseType     sharedtypes.CaseType
	CreatedAfter time.Time
	CreatedUntil time.Time
	Limit        int
	Offset       int
}
