package levelsdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// LevelRecord tracks one member's XP in one guild. Level is always the value
// the curve produces from XP; the two are written together, never separately.
// Reset is a mutation to zero, not a deletion.
type LevelRecord struct {
	bun.BaseModel `bun:"table:levels,alias:l"`

	GuildID       sharedtypes.GuildID   `bun:"guild_id,pk,notnull,type:varchar(20)"`
	UserID        sharedtypes.DiscordID `bun:"user_id,pk,notnull,type:varchar(20)"`
	XP            float64               `bun:"xp,notnull,default:0"`
	Level         int64                 `bun:"level,notnull,default:0"`
	LastMessageAt *time.Time            `bun:"last_message_at,nullzero"`
	Blacklisted   bool                  `bun:"blacklisted,notnull,default:false"`
}
