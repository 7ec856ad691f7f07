package guildconfigdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	GetConfigFn           func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildConfig, error)
	UpsertRoleSlotFn      func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot RoleSlot, roleID sharedtypes.RoleID) error
	UpsertChannelSlotFn   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot ChannelSlot, channelID sharedtypes.ChannelID) error
	UpsertPermLevelRoleFn func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, level int, roleID sharedtypes.RoleID) error
}

func (f *FakeRepository) GetConfig(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildConfig, error) {
	if f.GetConfigFn != nil {
		return f.GetConfigFn(ctx, db, guildID)
	}
	return nil, nil
}

func (f *FakeRepository) UpsertRoleSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot RoleSlot, roleID sharedtypes.RoleID) error {
	if f.UpsertRoleSlotFn != nil {
		return f.UpsertRoleSlotFn(ctx, db, guildID, slot, roleID)
	}
	return nil
}

func (f *FakeRepository) UpsertChannelSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot ChannelSlot, channelID sharedtypes.ChannelID) error {
	if f.UpsertChannelSlotFn != nil {
		return f.UpsertChannelSlotFn(ctx, db, guildID, slot, channelID)
	}
	return nil
}

func (f *FakeRepository) UpsertPermLevelRole(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, level int, roleID sharedtypes.RoleID) error {
	if f.UpsertPermLevelRoleFn != nil {
		return f.UpsertPermLevelRoleFn(ctx, db, guildID, level, roleID)
	}
	return nil
}
