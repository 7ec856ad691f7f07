package casedb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// FakeRepository is a fake implementation of Repository for testing.
// Unset funcs return zero values.
type FakeRepository struct {
	NextCaseNumberFn              func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int64, error)
	InsertCaseFn                  func(ctx context.Context, db bun.IDB, c *Case) error
	GetCaseByNumberFn             func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64) (*Case, error)
	GetMostRecentCaseInCategoryFn func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, category sharedtypes.RestrictionCategory) (*Case, error)
	GetCasesByFilterFn            func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, filter CaseFilter) ([]Case, error)
	UpdateExpiryFn                func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64, expiresAt *time.Time) error
}

func (f *FakeRepository) NextCaseNumber(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int64, error) {
	if f.NextCaseNumberFn != nil {
		return f.NextCaseNumberFn(ctx, db, guildID)
	}
	return 0, nil
}

func (f *FakeRepository) InsertCase(ctx context.Context, db bun.IDB, c *Case) error {
	if f.InsertCaseFn != nil {
		return f.InsertCaseFn(ctx, db, c)
	}
	return nil
}

func (f *FakeRepository) GetCaseByNumber(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64) (*Case, error) {
	if f.GetCaseByNumberFn != nil {
		return f.GetCaseByNumberFn(ctx, db, guildID, caseNumber)
	}
	return nil, nil
}

func (f *FakeRepository) GetMostRecentCaseInCategory(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, category sharedtypes.RestrictionCategory) (*Case, error) {
	if f.GetMostRecentCaseInCategoryFn != nil {
		return f.GetMostRecentCaseInCategoryFn(ctx, db, guildID, userID, category)
	}
	return nil, nil
}

func (f *FakeRepository) GetCasesByFilter(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, filter CaseFilter) ([]Case, error) {
	if f.GetCasesByFilterFn != nil {
		return f.GetCasesByFilterFn(ctx, db, guildID, filter)
	}
	return nil, nil
}

func (f *FakeRepository) UpdateExpiry(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, caseNumber int64, expiresAt *time.Time) error {
	if f.UpdateExpiryFn != nil {
		return f.UpdateExpiryFn(ctx, db, guildID, caseNumber, expiresAt)
	}
	return nil
}
