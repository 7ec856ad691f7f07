package guildconfigdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Repository is the persistence surface for guild configuration. The guild
// ID is mandatory in every signature; cross-tenant writes are impossible by
// construction.
type Repository interface {
	GetConfig(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildConfig, error)
	UpsertRoleSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot RoleSlot, roleID sharedtypes.RoleID) error
	UpsertChannelSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot ChannelSlot, channelID sharedtypes.ChannelID) error
	UpsertPermLevelRole(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, level int, roleID sharedtypes.RoleID) error
}
