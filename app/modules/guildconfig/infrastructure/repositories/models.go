package guildconfigdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// GuildConfig holds one tenant's role and channel bindings. Zero or one row
// per guild; absence means defaults apply and is not an error.
type GuildConfig struct {
	bun.BaseModel `bun:"table:guild_configs,alias:g"`

	GuildID   sharedtypes.GuildID `bun:"guild_id,pk,notnull,type:varchar(20)"`
	CreatedAt time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	// Role slots.
	JailRoleID sharedtypes.RoleID `bun:"jail_role_id,nullzero,type:varchar(20)"`

	// Channel slots.
	JailChannelID       sharedtypes.ChannelID `bun:"jail_channel_id,nullzero,type:varchar(20)"`
	StarboardChannelID  sharedtypes.ChannelID `bun:"starboard_channel_id,nullzero,type:varchar(20)"`
	ReportLogChannelID  sharedtypes.ChannelID `bun:"report_log_channel_id,nullzero,type:varchar(20)"`
	AuditLogChannelID   sharedtypes.ChannelID `bun:"audit_log_channel_id,nullzero,type:varchar(20)"`
	ModLogChannelID     sharedtypes.ChannelID `bun:"mod_log_channel_id,nullzero,type:varchar(20)"`
	JoinLogChannelID    sharedtypes.ChannelID `bun:"join_log_channel_id,nullzero,type:varchar(20)"`
	PrivateLogChannelID sharedtypes.ChannelID `bun:"private_log_channel_id,nullzero,type:varchar(20)"`
	DevLogChannelID     sharedtypes.ChannelID `bun:"dev_log_channel_id,nullzero,type:varchar(20)"`

	PermLevelRoles []*PermLevelRole `bun:"rel:has-many,join:guild_id=guild_id"`
}

// PermLevelRole binds one permission level (0..7) to a role for a guild.
type PermLevelRole struct {
	bun.BaseModel `bun:"table:guild_perm_level_roles,alias:plr"`

	GuildID sharedtypes.GuildID `bun:"guild_id,pk,notnull,type:varchar(20)"`
	Level   int                 `bun:"level,pk,notnull"`
	RoleID  sharedtypes.RoleID  `bun:"role_id,notnull,type:varchar(20)"`
}

// RoleSlot names a logical role binding.
type RoleSlot string

const (
	RoleSlotJail RoleSlot = "jail_role"
)

// ChannelSlot names a logical channel binding.
type ChannelSlot string

const (
	ChannelSlotJail       ChannelSlot = "jail_channel"
	ChannelSlotStarboard  ChannelSlot = "starboard_channel"
	ChannelSlotReportLog  ChannelSlot = "report_log_channel"
	ChannelSlotAuditLog   ChannelSlot = "audit_log_channel"
	ChannelSlotModLog     ChannelSlot = "mod_log_channel"
	ChannelSlotJoinLog    ChannelSlot = "join_log_channel"
	ChannelSlotPrivateLog ChannelSlot = "private_log_channel"
	ChannelSlotDevLog     ChannelSlot = "dev_log_channel"
)

// Column mappings keep slot names decoupled from the schema. Upserts only
// ever interpolate column names taken from these maps.
var roleSlotColumns = map[RoleSlot]string{
	RoleSlotJail: "jail_role_id",
}

var channelSlotColumns = map[ChannelSlot]string{
	ChannelSlotJail:       "jail_channel_id",
	ChannelSlotStarboard:  "starboard_channel_id",
	ChannelSlotReportLog:  "report_log_channel_id",
	ChannelSlotAuditLog:   "audit_log_channel_id",
	ChannelSlotModLog:     "mod_log_channel_id",
	ChannelSlotJoinLog:    "join_log_channel_id",
	ChannelSlotPrivateLog: "private_log_channel_id",
	ChannelSlotDevLog:     "dev_log_channel_id",
}

// Valid reports whether the slot is known.
func (s RoleSlot) Valid() bool {
	_, ok := roleSlotColumns[s]
	return ok
}

// Valid reports whether the slot is known.
func (s ChannelSlot) Valid() bool {
	_, ok := channelSlotColumns[s]
	return ok
}

// MaxPermLevel bounds the permission-level role slots (0..MaxPermLevel).
const MaxPermLevel = 7
