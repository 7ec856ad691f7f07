package moderationservice

import (
	"context"
	"time"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
	"github.com/allthingslinux/tux-sub001/db/bundb"
)

// NextCaseNumber durably allocates the next sequence value for the tenant.
func (s *CaseService) NextCaseNumber(ctx context.Context, guildID sharedtypes.GuildID) (int64, error) {
	return withTelemetry(s, ctx, "NextCaseNumber", guildID, func(ctx context.Context) (int64, error) {
		if guildID == "" {
			return 0, apperrors.Validation("guildID", "must not be empty")
		}
		return s.repo.NextCaseNumber(ctx, bundb.TxFromContext(ctx), guildID)
	})
}

// InsertCase allocates a case number, persists the record and returns it.
// Inside a transaction scope the allocation and insert commit or roll back
// together; standalone, a failed insert may leave a gap in the sequence,
// which is acceptable; a duplicate never is.
func (s *CaseService) InsertCase(ctx context.Context, input CaseInput) (*casedb.Case, error) {
	return withTelemetry(s, ctx, "InsertCase", input.GuildID, func(ctx context.Context) (*casedb.Case, error) {
		if input.GuildID == "" {
			return nil, apperrors.Validation("guildID", "must not be empty")
		}
		if input.UserID == "" {
			return nil, apperrors.Validation("userID", "must not be empty")
		}
		if input.ModeratorID == "" {
			return nil, apperrors.Validation("moderatorID", "must not be empty")
		}
		if !input.CaseType.Valid() {
			return nil, apperrors.Validation("caseType", "unknown case type "+input.CaseType.String())
		}

		c := &casedb.Case{
			GuildID:     input.GuildID,
			UserID:      input.UserID,
			ModeratorID: input.ModeratorID,
			CaseType:    input.CaseType,
			Reason:      input.Reason,
			ExpiresAt:   input.ExpiresAt,
		}
		if err := s.repo.InsertCase(ctx, bundb.TxFromContext(ctx), c); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// GetCaseByNumber returns the case, or nil without error when absent.
func (s *CaseService) GetCaseByNumber(ctx context.Context, guildID sharedtypes.GuildID, caseNumber int64) (*casedb.Case, error) {
	return withTelemetry(s, ctx, "GetCaseByNumber", guildID, func(ctx context.Context) (*casedb.Case, error) {
		if guildID == "" {
			return nil, apperrors.Validation("guildID", "must not be empty")
		}
		if caseNumber < 1 {
			return nil, apperrors.Validation("caseNumber", "must be positive")
		}
		return s.repo.GetCaseByNumber(ctx, bundb.TxFromContext(ctx), guildID, caseNumber)
	})
}

// GetCasesByFilter returns matching cases, newest first.
func (s *CaseService) GetCasesByFilter(ctx context.Context, guildID sharedtypes.GuildID, filter casedb.CaseFilter) ([]casedb.Case, error) {
	return withTelemetry(s, ctx, "GetCasesByFilter", guildID, func(ctx context.Context) ([]casedb.Case, error) {
		if guildID == "" {
			return nil, apperrors.Validation("guildID", "must not be empty")
		}
		if filter.CaseType != "" && !filter.CaseType.Valid() {
			return nil, apperrors.Validation("filter.caseType", "unknown case type "+filter.CaseType.String())
		}
		return s.repo.GetCasesByFilter(ctx, bundb.TxFromContext(ctx), guildID, filter)
	})
}

// ExtendCase refreshes a case's expiry, the only permitted mutation.
func (s *CaseService) ExtendCase(ctx context.Context, guildID sharedtypes.GuildID, caseNumber int64, expiresAt time.Time) error {
	_, err := withTelemetry(s, ctx, "ExtendCase", guildID, func(ctx context.Context) (struct{}, error) {
		if guildID == "" {
			return struct{}{}, apperrors.Validation("guildID", "must not be empty")
		}
		if caseNumber < 1 {
			return struct{}{}, apperrors.Validation("caseNumber", "must be positive")
		}
		return struct{}{}, s.repo.UpdateExpiry(ctx, bundb.TxFromContext(ctx), guildID, caseNumber, &expiresAt)
	})
	return err
}
