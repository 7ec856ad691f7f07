package migrations

import (
	"context"

	"github.com/uptrace/bun"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewCreateTable().Model((*casedb.Case)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*casedb.CaseCounter)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			// Restriction lookups scan the newest case per (guild, user, type).
			if _, err := db.NewCreateIndex().
				Model((*casedb.Case)(nil)).
				Index("cases_guild_user_type_idx").
				IfNotExists().
				Column("guild_id", "user_id", "case_type").
				Exec(ctx); err != nil {
				return err
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewDropTable().Model((*casedb.Case)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*casedb.CaseCounter)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
	)
}
