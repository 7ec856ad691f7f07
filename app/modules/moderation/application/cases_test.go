package moderationservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uptrace/bun"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

func TestCaseService_NextCaseNumber(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		guildID sharedtypes.GuildID
		repoFn  func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (int64, error)
		want    int64
		wantErr bool
	}{
		{
			name:    "success",
			guildID: "guild-1",
			repoFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID) (int64, error) {
				return 7, nil
			},
			want: 7,
		},
		{
			name:    "empty guild id",
			guildID: "",
			repoFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID) (int64, error) {
				t.Fatal("repo should not be called")
				return 0, nil
			},
			wantErr: true,
		},
		{
			name:    "repo error",
			guildID: "guild-1",
			repoFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID) (int64, error) {
				return 0, errors.New("connection reset")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestCaseService(t, &casedb.FakeRepository{NextCaseNumberFn: tt.repoFn})

			got, err := s.NextCaseNumber(ctx, tt.guildID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextCaseNumber = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCaseService_InsertCase(t *testing.T) {
	ctx := context.Background()

	validInput := CaseInput{
		GuildID:     "guild-1",
		UserID:      "user-1",
		ModeratorID: "mod-1",
		CaseType:    sharedtypes.CaseTypeBan,
		Reason:      "spam",
	}

	t.Run("success allocates number", func(t *testing.T) {
		repo := &casedb.FakeRepository{
			InsertCaseFn: func(_ context.Context, _ bun.IDB, c *casedb.Case) error {
				c.CaseNumber = 3
				return nil
			},
		}
		s := newTestCaseService(t, repo)

		got, err := s.InsertCase(ctx, validInput)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CaseNumber != 3 {
			t.Errorf("CaseNumber = %d, want 3", got.CaseNumber)
		}
		if got.GuildID != "guild-1" || got.UserID != "user-1" || got.CaseType != sharedtypes.CaseTypeBan {
			t.Errorf("unexpected case fields: %+v", got)
		}
	})

	t.Run("repo error passes through", func(t *testing.T) {
		repoErr := errors.New("insert failed")
		repo := &casedb.FakeRepository{
			InsertCaseFn: func(_ context.Context, _ bun.IDB, _ *casedb.Case) error {
				return repoErr
			},
		}
		s := newTestCaseService(t, repo)

		if _, err := s.InsertCase(ctx, validInput); !errors.Is(err, repoErr) {
			t.Errorf("expected repo error, got %v", err)
		}
	})

	invalid := []struct {
		name  string
		setup func(in CaseInput) CaseInput
	}{
		{"empty guild id", func(in CaseInput) CaseInput { in.GuildID = ""; return in }},
		{"empty user id", func(in CaseInput) CaseInput { in.UserID = ""; return in }},
		{"empty moderator id", func(in CaseInput) CaseInput { in.ModeratorID = ""; return in }},
		{"unknown case type", func(in CaseInput) CaseInput { in.CaseType = "BANANA"; return in }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := &casedb.FakeRepository{
				InsertCaseFn: func(_ context.Context, _ bun.IDB, _ *casedb.Case) error {
					t.Fatal("repo should not be called")
					return nil
				},
			}
			s := newTestCaseService(t, repo)

			_, err := s.InsertCase(ctx, tt.setup(validInput))
			if !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCaseService_GetCaseByNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		s := newTestCaseService(t, &casedb.FakeRepository{})

		got, err := s.GetCaseByNumber(ctx, "guild-1", 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil case, got %+v", got)
		}
	})

	t.Run("invalid case number", func(t *testing.T) {
		s := newTestCaseService(t, &casedb.FakeRepository{})

		if _, err := s.GetCaseByNumber(ctx, "guild-1", 0); !apperrors.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestCaseService_ExtendCase(t *testing.T) {
	ctx := context.Background()
	expiry := time.Now().Add(24 * time.Hour)

	t.Run("success passes expiry to repo", func(t *testing.T) {
		var gotExpiry *time.Time
		repo := &casedb.FakeRepository{
			UpdateExpiryFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ int64, expiresAt *time.Time) error {
				gotExpiry = expiresAt
				return nil
			},
		}
		s := newTestCaseService(t, repo)

		if err := s.ExtendCase(ctx, "guild-1", 4, expiry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotExpiry == nil || !gotExpiry.Equal(expiry) {
			t.Errorf("expiry = %v, want %v", gotExpiry, expiry)
		}
	})

	t.Run("unknown case", func(t *testing.T) {
		repo := &casedb.FakeRepository{
			UpdateExpiryFn: func(_ context.Context, _ bun.IDB, _ sharedtypes.GuildID, _ int64, _ *time.Time) error {
				return casedb.ErrNotFound
			},
		}
		s := newTestCaseService(t, repo)

		if err := s.ExtendCase(ctx, "guild-1", 99, expiry); !errors.Is(err, casedb.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
