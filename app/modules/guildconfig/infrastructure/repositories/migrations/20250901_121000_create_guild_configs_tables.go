package migrations

import (
	"context"

	"github.com/uptrace/bun"

	guildconfigdb "github.com/allthingslinux/tux-sub001/app/modules/guildconfig/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewCreateTable().Model((*guildconfigdb.GuildConfig)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*guildconfigdb.PermLevelRole)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewDropTable().Model((*guildconfigdb.PermLevelRole)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*guildconfigdb.GuildConfig)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
	)
}
