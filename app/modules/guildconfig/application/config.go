package guildconfigservice

import (
	"context"
	"fmt"

	guildconfigdb "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
	"github.com/allthingslinux/tux-sub001/db/bundb"
)

// Get returns the guild's configuration. An unconfigured guild yields a
// default-valued record, never an error.
func (s *GuildConfigService) Get(ctx context.Context, guildID sharedtypes.GuildID) (*guildconfigdb.GuildConfig, error) {
	var cfg *guildconfigdb.GuildConfig
	err := s.serviceWrapper(ctx, "Get", guildID, func(ctx context.Context) error {
		if guildID == "" {
			return apperrors.Validation("guildID", "must not be empty")
		}
		stored, err := s.repo.GetConfig(ctx, bundb.TxFromContext(ctx), guildID)
		if err != nil {
			return err
		}
		if stored == nil {
			stored = &guildconfigdb.GuildConfig{GuildID: guildID}
		}
		cfg = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetRoleSlot binds a role to a logical slot, creating the config row on
// first write.
func (s *GuildConfigService) SetRoleSlot(ctx context.Context, guildID sharedtypes.GuildID, slot guildconfigdb.RoleSlot, roleID sharedtypes.RoleID) error {
	return s.serviceWrapper(ctx, "SetRoleSlot", guildID, func(ctx context.Context) error {
		if guildID == "" {
			return apperrors.Validation("guildID", "must not be empty")
		}
		if !slot.Valid() {
			return apperrors.Validation("slot", fmt.Sprintf("unknown role slot %q", slot))
		}
		return s.repo.UpsertRoleSlot(ctx, bundb.TxFromContext(ctx), guildID, slot, roleID)
	})
}

// SetChannelSlot binds a channel to a logical slot.
func (s *GuildConfigService) SetChannelSlot(ctx context.Context, guildID sharedtypes.GuildID, slot guildconfigdb.ChannelSlot, channelID sharedtypes.ChannelID) error {
	return s.serviceWrapper(ctx, "SetChannelSlot", guildID, func(ctx context.Context) error {
		if guildID == "" {
			return apperrors.Validation("guildID", "must not be empty")
		}
		if !slot.Valid() {
			return apperrors.Validation("slot", fmt.Sprintf("unknown channel slot %q", slot))
		}
		return s.repo.UpsertChannelSlot(ctx, bundb.TxFromContext(ctx), guildID, slot, channelID)
	})
}

// SetPermLevelRole binds a permission level (0..MaxPermLevel) to a role.
func (s *GuildConfigService) SetPermLevelRole(ctx context.Context, guildID sharedtypes.GuildID, level int, roleID sharedtypes.RoleID) error {
	return s.serviceWrapper(ctx, "SetPermLevelRole", guildID, func(ctx context.Context) error {
		if guildID == "" {
			return apperrors.Validation("guildID", "must not be empty")
		}
		if level < 0 || level > guildconfigdb.MaxPermLevel {
			return apperrors.Validation("level", fmt.Sprintf("must be between 0 and %d", guildconfigdb.MaxPermLevel))
		}
		return s.repo.UpsertPermLevelRole(ctx, bundb.TxFromContext(ctx), guildID, level, roleID)
	})
}
