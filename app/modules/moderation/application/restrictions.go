package moderationservice

import (
	"context"
	"time"

	"github.com/allthingslinux/tux-sub001/app/shared/apperrors"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
	"github.com/allthingslinux/tux-sub001/db/bundb"
)

// IsUnderActiveRestriction reports whether the user's most recent case in
// the category is the activating type and has not expired. An expired
// activating case reads as not-in-effect even without an explicit
// deactivating case. The check is read-committed with respect to concurrent
// inserts; flows that must not race an insert run both inside one
// transaction scope.
func (s *CaseService) IsUnderActiveRestriction(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID, category sharedtypes.RestrictionCategory) (bool, error) {
	return withTelemetry(s, ctx, "IsUnderActiveRestriction", guildID, func(ctx context.Context) (bool, error) {
		if guildID == "" {
			return false, apperrors.Validation("guildID", "must not be empty")
		}
		if userID == "" {
			return false, apperrors.Validation("userID", "must not be empty")
		}
		if !category.Valid() {
			return false, apperrors.Validation("category", "unknown restriction category "+category.String())
		}

		latest, err := s.repo.GetMostRecentCaseInCategory(ctx, bundb.TxFromContext(ctx), guildID, userID, category)
		if err != nil {
			return false, err
		}
		if latest == nil || !latest.CaseType.IsActivating() {
			return false, nil
		}
		if latest.ExpiresAt != nil && !latest.ExpiresAt.After(time.Now()) {
			return false, nil
		}
		return true, nil
	})
}
