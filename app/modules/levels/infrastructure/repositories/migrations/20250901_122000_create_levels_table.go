package migrations

import (
	"context"

	"github.com/uptrace/bun"

	levelsdb "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewCreateTable().Model((*levelsdb.LevelRecord)(nil)).IfNotExists().Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDropTable().Model((*levelsdb.LevelRecord)(nil)).IfExists().Cascade().Exec(ctx)
			return err
		},
	)
}
