package levelsservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/uptrace/bun"

	levelsdb "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/observability/metrics"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

const testCooldown = 60 * time.Second

func newTestLevelsService(t *testing.T, repo *levelsdb.FakeRepository) *LevelsService {
	t.Helper()
	return NewLevelsService(
		repo,
		slog.New(slog.DiscardHandler),
		&metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		testCooldown,
		0, 0, // flood guard off
	)
}

// memoryRepo backs the fake with a single in-memory record so sequential
// awards observe each other.
func memoryRepo(rec **levelsdb.LevelRecord) *levelsdb.FakeRepository {
	return &levelsdb.FakeRepository{
		GetRecordFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ sharedtypes.DiscordID) (*levelsdb.LevelRecord, error) {
			if *rec == nil {
				return nil, nil
			}
			cp := **rec
			return &cp, nil
		},
		UpsertRecordFn: func(_ context.Context, _ bun.IDB, r *levelsdb.LevelRecord) error {
			cp := *r
			*rec = &cp
			return nil
		},
	}
}

func TestLevelsService_AwardXP(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("first message creates the record", func(t *testing.T) {
		var stored *levelsdb.LevelRecord
		s := newTestLevelsService(t, memoryRepo(&stored))

		got, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.XP != 10 || got.Level != 0 || got.LeveledUp {
			t.Errorf("AwardXP = %+v, want XP=10 Level=0", got)
		}
		if stored == nil || stored.LastMessageAt == nil || !stored.LastMessageAt.Equal(now) {
			t.Errorf("stored record = %+v, want LastMessageAt=%v", stored, now)
		}
	})

	t.Run("message inside cooldown is a no-op", func(t *testing.T) {
		var stored *levelsdb.LevelRecord
		s := newTestLevelsService(t, memoryRepo(&stored))

		if _, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now); err != nil {
			t.Fatal(err)
		}
		got, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now.Add(30*time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.XP != 10 {
			t.Errorf("XP = %v after cooldown no-op, want 10", got.XP)
		}
		if stored.XP != 10 {
			t.Errorf("stored XP = %v, want 10", stored.XP)
		}
	})

	t.Run("message after cooldown accrues", func(t *testing.T) {
		var stored *levelsdb.LevelRecord
		s := newTestLevelsService(t, memoryRepo(&stored))

		if _, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now); err != nil {
			t.Fatal(err)
		}
		got, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now.Add(testCooldown))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.XP != 20 {
			t.Errorf("XP = %v, want 20", got.XP)
		}
	})

	t.Run("blacklisted member accrues nothing", func(t *testing.T) {
		stored := &levelsdb.LevelRecord{GuildID: "guild-1", UserID: "user-1", XP: 50, Level: 1, Blacklisted: true}
		s := newTestLevelsService(t, memoryRepo(&stored))

		got, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.XP != 50 || got.Level != 1 || got.LeveledUp {
			t.Errorf("AwardXP = %+v, want unchanged XP=50 Level=1", got)
		}
		if stored.XP != 50 {
			t.Errorf("stored XP = %v, want unchanged 50", stored.XP)
		}
	})

	t.Run("crossing a boundary reports LeveledUp", func(t *testing.T) {
		stored := &levelsdb.LevelRecord{GuildID: "guild-1", UserID: "user-1", XP: 20}
		s := newTestLevelsService(t, memoryRepo(&stored))

		got, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.XP != 30 || got.Level != 1 || !got.LeveledUp {
			t.Errorf("AwardXP = %+v, want XP=30 Level=1 LeveledUp", got)
		}
	})

	t.Run("validation", func(t *testing.T) {
		s := newTestLevelsService(t, &levelsdb.FakeRepository{})

		for _, tc := range []struct {
			name    string
			guildID sharedtypes.GuildID
			userID  sharedtypes.DiscordID
			amount  float64
		}{
			{"empty guild", "", "user-1", 10},
			{"empty user", "guild-1", "", 10},
			{"zero amount", "guild-1", "user-1", 0},
			{"negative amount", "guild-1", "user-1", -5},
		} {
			if _, err := s.AwardXP(ctx, tc.guildID, tc.userID, tc.amount, now); !apperrors.IsValidation(err) {
				t.Errorf("%s: expected validation error, got %v", tc.name, err)
			}
		}
	})

	t.Run("repo error passes through", func(t *testing.T) {
		repoErr := errors.New("connection reset")
		repo := &levelsdb.FakeRepository{
			GetRecordFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ sharedtypes.DiscordID) (*levelsdb.LevelRecord, error) {
				return nil, repoErr
			},
		}
		s := newTestLevelsService(t, repo)

		if _, err := s.AwardXP(ctx, "guild-1", "user-1", 10, now); !errors.Is(err, repoErr) {
			t.Errorf("expected repo error, got %v", err)
		}
	})
}

func TestLevelsService_GetLevelsBatch(t *testing.T) {
	ctx := context.Background()

	repo := &levelsdb.FakeRepository{
		GetRecordsBatchFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) ([]levelsdb.LevelRecord, error) {
			// user-3 has no record
			return []levelsdb.LevelRecord{
				{GuildID: "guild-1", UserID: "user-1", XP: 100, Level: 2},
				{GuildID: "guild-1", UserID: "user-2", XP: 30, Level: 1},
			}, nil
		},
	}
	s := newTestLevelsService(t, repo)

	got, err := s.GetLevelsBatch(ctx, "guild-1", []sharedtypes.DiscordID{"user-1", "user-2", "user-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got["user-1"].XP != 100 || got["user-2"].Level != 1 {
		t.Errorf("unexpected records: %+v", got)
	}
	if _, ok := got["user-3"]; ok {
		t.Error("user-3 should be absent from the map")
	}
}

func TestLevelsService_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var called bool
		repo := &levelsdb.FakeRepository{
			ResetRecordFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ sharedtypes.DiscordID) error {
				called = true
				return nil
			},
		}
		s := newTestLevelsService(t, repo)

		if err := s.Reset(ctx, "guild-1", "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !called {
			t.Error("repo was not called")
		}
	})

	t.Run("missing record error passes through", func(t *testing.T) {
		repo := &levelsdb.FakeRepository{
			ResetRecordFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ sharedtypes.DiscordID) error {
				return apperrors.ErrNoRowsAffected
			},
		}
		s := newTestLevelsService(t, repo)

		if err := s.Reset(ctx, "guild-1", "user-1"); !errors.Is(err, apperrors.ErrNoRowsAffected) {
			t.Errorf("expected ErrNoRowsAffected, got %v", err)
		}
	})
}

func TestLevelsService_SetBlacklisted(t *testing.T) {
	ctx := context.Background()

	var gotBlacklisted bool
	repo := &levelsdb.FakeRepository{
		SetBlacklistedFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ sharedtypes.DiscordID, blacklisted bool) error {
			gotBlacklisted = blacklisted
			return nil
		},
	}
	s := newTestLevelsService(t, repo)

	if err := s.SetBlacklisted(ctx, "guild-1", "user-1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotBlacklisted {
		t.Error("blacklisted flag not passed through")
	}

	if err := s.SetBlacklisted(ctx, "", "user-1", true); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
