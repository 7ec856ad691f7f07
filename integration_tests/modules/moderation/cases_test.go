package moderationintegrationtests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	moderationservice "github.com/allthingslinux/tux-sub001/app/modules/moderation/application"
	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

func TestInsertCase_RoundTrip(t *testing.T) {
	deps := setupTestCaseService(t)

	inserted, err := deps.Service.InsertCase(deps.Ctx, moderationservice.CaseInput{
		GuildID:     "guild-1",
		UserID:      "user-1",
		ModeratorID: "mod-1",
		CaseType:    sharedtypes.CaseTypeWarn,
		Reason:      "spam in #general",
	})
	if err != nil {
		t.Fatalf("InsertCase: %v", err)
	}
	if inserted.CaseNumber != 1 {
		t.Errorf("first case number = %d, want 1", inserted.CaseNumber)
	}
	if inserted.CaseUUID == uuid.Nil {
		t.Error("case UUID was not assigned")
	}

	got, err := deps.Service.GetCaseByNumber(deps.Ctx, "guild-1", inserted.CaseNumber)
	if err != nil {
		t.Fatalf("GetCaseByNumber: %v", err)
	}
	if got == nil {
		t.Fatal("inserted case not found")
	}
	if got.Reason != "spam in #general" || got.CaseType != sharedtypes.CaseTypeWarn {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Another guild's numbering starts from 1 independently.
	other, err := deps.Service.InsertCase(deps.Ctx, moderationservice.CaseInput{
		GuildID:     "guild-2",
		UserID:      "user-1",
		ModeratorID: "mod-1",
		CaseType:    sharedtypes.CaseTypeBan,
	})
	if err != nil {
		t.Fatalf("InsertCase guild-2: %v", err)
	}
	if other.CaseNumber != 1 {
		t.Errorf("guild-2 first case number = %d, want 1", other.CaseNumber)
	}
}

func TestNextCaseNumber_ConcurrentAllocationsAreUnique(t *testing.T) {
	deps := setupTestCaseService(t)

	const n = 25
	numbers := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			numbers[i], errs[i] = deps.Service.NextCaseNumber(context.Background(), "guild-1")
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for i := range n {
		if errs[i] != nil {
			t.Fatalf("allocation %d failed: %v", i, errs[i])
		}
		if seen[numbers[i]] {
			t.Fatalf("case number %d allocated twice", numbers[i])
		}
		seen[numbers[i]] = true
	}
	for want := int64(1); want <= n; want++ {
		if !seen[want] {
			t.Errorf("case number %d missing from allocations", want)
		}
	}
}

func TestWithTransaction_RollbackLeavesNothing(t *testing.T) {
	deps := setupTestCaseService(t)
	boom := errors.New("boom")

	err := deps.DBService.WithTransaction(deps.Ctx, func(ctx context.Context, _ bun.IDB) error {
		if _, err := deps.Service.InsertCase(ctx, moderationservice.CaseInput{
			GuildID:     "guild-1",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			CaseType:    sharedtypes.CaseTypeJail,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	cases, err := deps.Service.GetCasesByFilter(deps.Ctx, "guild-1", casedb.CaseFilter{})
	if err != nil {
		t.Fatalf("GetCasesByFilter: %v", err)
	}
	if len(cases) != 0 {
		t.Errorf("rolled-back insert left %d rows", len(cases))
	}
}

func TestWithTransaction_CommitIsVisible(t *testing.T) {
	deps := setupTestCaseService(t)

	err := deps.DBService.WithTransaction(deps.Ctx, func(ctx context.Context, _ bun.IDB) error {
		_, err := deps.Service.InsertCase(ctx, moderationservice.CaseInput{
			GuildID:     "guild-1",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			CaseType:    sharedtypes.CaseTypeBan,
		})
		return err
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	active, err := deps.Service.IsUnderActiveRestriction(deps.Ctx, "guild-1", "user-1", sharedtypes.CategoryBan)
	if err != nil {
		t.Fatalf("IsUnderActiveRestriction: %v", err)
	}
	if !active {
		t.Error("committed ban not visible")
	}
}

func TestIsUnderActiveRestriction_Flip(t *testing.T) {
	deps := setupTestCaseService(t)

	insert := func(ct sharedtypes.CaseType, expiresAt *time.Time) {
		t.Helper()
		if _, err := deps.Service.InsertCase(deps.Ctx, moderationservice.CaseInput{
			GuildID:     "guild-1",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			CaseType:    ct,
			ExpiresAt:   expiresAt,
		}); err != nil {
			t.Fatalf("InsertCase %s: %v", ct, err)
		}
	}
	check := func(category sharedtypes.RestrictionCategory, want bool) {
		t.Helper()
		got, err := deps.Service.IsUnderActiveRestriction(deps.Ctx, "guild-1", "user-1", category)
		if err != nil {
			t.Fatalf("IsUnderActiveRestriction %s: %v", category, err)
		}
		if got != want {
			t.Errorf("IsUnderActiveRestriction(%s) = %v, want %v", category, got, want)
		}
	}

	check(sharedtypes.CategoryBan, false)

	insert(sharedtypes.CaseTypeBan, nil)
	check(sharedtypes.CategoryBan, true)
	check(sharedtypes.CategoryJail, false)

	insert(sharedtypes.CaseTypeUnban, nil)
	check(sharedtypes.CategoryBan, false)

	// An already-expired timeout reads as lifted without an UNTIMEOUT case.
	past := time.Now().Add(-time.Minute)
	insert(sharedtypes.CaseTypeTimeout, &past)
	check(sharedtypes.CategoryTimeout, false)

	future := time.Now().Add(time.Hour)
	insert(sharedtypes.CaseTypeTimeout, &future)
	check(sharedtypes.CategoryTimeout, true)
}

func TestGetCasesByFilter_And_ExtendCase(t *testing.T) {
	deps := setupTestCaseService(t)

	for _, in := range []moderationservice.CaseInput{
		{GuildID: "guild-1", UserID: "user-1", ModeratorID: "mod-1", CaseType: sharedtypes.CaseTypeWarn},
		{GuildID: "guild-1", UserID: "user-2", ModeratorID: "mod-1", CaseType: sharedtypes.CaseTypeBan},
		{GuildID: "guild-1", UserID: "user-1", ModeratorID: "mod-2", CaseType: sharedtypes.CaseTypeWarn},
	} {
		if _, err := deps.Service.InsertCase(deps.Ctx, in); err != nil {
			t.Fatalf("InsertCase: %v", err)
		}
	}

	warns, err := deps.Service.GetCasesByFilter(deps.Ctx, "guild-1", casedb.CaseFilter{
		UserID:   "user-1",
		CaseType: sharedtypes.CaseTypeWarn,
	})
	if err != nil {
		t.Fatalf("GetCasesByFilter: %v", err)
	}
	if len(warns) != 2 {
		t.Fatalf("filter returned %d cases, want 2", len(warns))
	}
	if warns[0].CaseNumber < warns[1].CaseNumber {
		t.Error("expected newest-first ordering")
	}

	expiry := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	if err := deps.Service.ExtendCase(deps.Ctx, "guild-1", warns[0].CaseNumber, expiry); err != nil {
		t.Fatalf("ExtendCase: %v", err)
	}
	got, err := deps.Service.GetCaseByNumber(deps.Ctx, "guild-1", warns[0].CaseNumber)
	if err != nil {
		t.Fatal(err)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.UTC().Truncate(time.Second).Equal(expiry) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, expiry)
	}

	if err := deps.Service.ExtendCase(deps.Ctx, "guild-1", 999, expiry); !errors.Is(err, casedb.ErrNotFound) {
		t.Errorf("ExtendCase on missing case = %v, want ErrNotFound", err)
	}
}

func TestIterCases_PagesThroughEverything(t *testing.T) {
	deps := setupTestCaseService(t)

	const total = 120
	for range total {
		if _, err := deps.Service.InsertCase(deps.Ctx, moderationservice.CaseInput{
			GuildID:     "guild-1",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			CaseType:    sharedtypes.CaseTypeWarn,
		}); err != nil {
			t.Fatalf("InsertCase: %v", err)
		}
	}

	var seen int
	last := int64(1 << 62)
	for c, err := range deps.Service.IterCases(deps.Ctx, "guild-1", casedb.CaseFilter{}) {
		if err != nil {
			t.Fatalf("IterCases: %v", err)
		}
		if c.CaseNumber >= last {
			t.Fatalf("ordering violated: %d after %d", c.CaseNumber, last)
		}
		last = c.CaseNumber
		seen++
	}
	if seen != total {
		t.Errorf("iterated %d cases, want %d", seen, total)
	}
}
