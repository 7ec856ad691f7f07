package levelsservice

import (
	"context"
	"time"

	levelsdb "github.com/allthingslinux/tux-sub001/app/modules/levels/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
	"github.com/allthingslinux/tux-sub001/db/bundb"
)

// AwardXP grants XP for a qualifying message. The award is an explicit no-op
// (not an error) when the member is blacklisted or the cooldown window has
// not elapsed since their last counted message; in that case the current
// values are returned unchanged and nothing is written.
func (s *LevelsService) AwardXP(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, amount float64, now time.Time) (AwardResult, error) {
	return withTelemetry(s, ctx, "AwardXP", guildID, func(ctx context.Context) (AwardResult, error) {
		if guildID == "" {
			return AwardResult{}, apperrors.Validation("guildID", "must not be empty")
		}
		if userID == "" {
			return AwardResult{}, apperrors.Validation("userID", "must not be empty")
		}
		if amount <= 0 {
			return AwardResult{}, apperrors.Validation("amount", "must be positive")
		}

		idb := bundb.TxFromContext(ctx)

		flooded := s.limiter != nil && !s.limiter.Allow()

		rec, err := s.repo.GetRecord(ctx, idb, guildID, userID)
		if err != nil {
			return AwardResult{}, err
		}
		if rec == nil {
			rec = &levelsdb.LevelRecord{GuildID: guildID, UserID: userID}
		}

		onCooldown := rec.LastMessageAt != nil && now.Sub(*rec.LastMessageAt) < s.cooldown
		if flooded || rec.Blacklisted || onCooldown {
			return AwardResult{XP: rec.XP, Level: rec.Level}, nil
		}

		oldLevel := rec.Level
		rec.XP += amount
		rec.Level = LevelForXP(rec.XP)
		t := now
		rec.LastMessageAt = &t

		if err := s.repo.UpsertRecord(ctx, idb, rec); err != nil {
			return AwardResult{}, err
		}
		return AwardResult{XP: rec.XP, Level: rec.Level, LeveledUp: rec.Level > oldLevel}, nil
	})
}

// SetBlacklisted marks a member as excluded from (or readmitted to) XP
// accrual.
func (s *LevelsService) SetBlacklisted(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, blacklisted bool) error {
	_, err := withTelemetry(s, ctx, "SetBlacklisted", guildID, func(ctx context.Context) (struct{}, error) {
		if guildID == "" {
			return struct{}{}, apperrors.Validation("guildID", "must not be empty")
		}
		if userID == "" {
			return struct{}{}, apperrors.Validation("userID", "must not be empty")
		}
		return struct{}{}, s.repo.SetBlacklisted(ctx, bundb.TxFromContext(ctx), guildID, userID, blacklisted)
	})
	return err
}

// GetLevelsBatch fetches the requested members' records in one query and
// keys them by user. Members with no record are absent from the map.
func (s *LevelsService) GetLevelsBatch(ctx context.Context, guildID sharedtypes.GuildID, userIDs []sharedtypes.DiscordID) (map[sharedtypes.DiscordID]levelsdb.LevelRecord, error) {
	return withTelemetry(s, ctx, "GetLevelsBatch", guildID, func(ctx context.Context) (map[sharedtypes.DiscordID]levelsdb.LevelRecord, error) {
		if guildID == "" {
			return nil, apperrors.Validation("guildID", "must not be empty")
		}
		recs, err := s.repo.GetRecordsBatch(ctx, bundb.TxFromContext(ctx), guildID, userIDs)
		if err != nil {
			return nil, err
		}
		out := make(map[sharedtypes.DiscordID]levelsdb.LevelRecord, len(recs))
		for _, rec := range recs {
			out[rec.UserID] = rec
		}
		return out, nil
	})
}

// Reset zeroes a member's XP and level. A mutation, not a deletion.
func (s *LevelsService) Reset(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) error {
	_, err := withTelemetry(s, ctx, "Reset", guildID, func(ctx context.Context) (struct{}, error) {
		if guildID == "" {
			return struct{}{}, apperrors.Validation("guildID", "must not be empty")
		}
		if userID == "" {
			return struct{}{}, apperrors.Validation("userID", "must not be empty")
		}
		return struct{}{}, s.repo.ResetRecord(ctx, bundb.TxFromContext(ctx), guildID, userID)
	})
	return err
}
