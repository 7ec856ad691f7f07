package guildconfigdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// Impl implements Repository using bun.
type Impl struct {
	db *bun.DB
}

// NewRepository creates a guild config repository over the shared pool.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

// GetConfig returns the stored config with its permission-level roles, or
// nil without error when the guild has never been configured.
func (r *Impl) GetConfig(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildConfig, error) {
	if db == nil {
		db = r.db
	}
	var cfg GuildConfig
	err := db.NewSelect().
		Model(&cfg).
		Relation("PermLevelRoles").
		Where("g.guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Persist("guildconfigdb.GetConfig", err)
	}
	return &cfg, nil
}

// UpsertRoleSlot sets one role binding, creating the row if absent. Only the
// named column is touched on conflict so slots never clobber each other.
func (r *Impl) UpsertRoleSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot RoleSlot, roleID sharedtypes.RoleID) error {
	col, ok := roleSlotColumns[slot]
	if !ok {
		return apperrors.Validation("slot", fmt.Sprintf("unknown role slot %q", slot))
	}
	return r.upsertSlot(ctx, db, guildID, col, string(roleID), "guildconfigdb.UpsertRoleSlot")
}

// UpsertChannelSlot sets one channel binding, creating the row if absent.
func (r *Impl) UpsertChannelSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slot ChannelSlot, channelID sharedtypes.ChannelID) error {
	col, ok := channelSlotColumns[slot]
	if !ok {
		return apperrors.Validation("slot", fmt.Sprintf("unknown channel slot %q", slot))
	}
	return r.upsertSlot(ctx, db, guildID, col, string(channelID), "guildconfigdb.UpsertChannelSlot")
}

func (r *Impl) upsertSlot(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, col, value, op string) error {
	if db == nil {
		db = r.db
	}
	// col comes from the slot maps above, never from caller input.
	_, err := db.NewInsert().
		Model(&GuildConfig{GuildID: guildID}).
		Value(col, "?", value).
		On("CONFLICT (guild_id) DO UPDATE").
		Set(fmt.Sprintf("%s = EXCLUDED.%s", col, col)).
		Set("updated_at = now()").
		Exec(ctx)
	if err != nil {
		return apperrors.Persist(op, err)
	}
	return nil
}

// UpsertPermLevelRole binds a permission level to a role for the guild.
func (r *Impl) UpsertPermLevelRole(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, level int, roleID sharedtypes.RoleID) error {
	if db == nil {
		db = r.db
	}
	row := &PermLevelRole{GuildID: guildID, Level: level, RoleID: roleID}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (guild_id, level) DO UPDATE").
		Set("role_id = EXCLUDED.role_id").
		Exec(ctx)
	if err != nil {
		return apperrors.Persist("guildconfigdb.UpsertPermLevelRole", err)
	}
	return nil
}
