package moderationservice

import (
	"context"
	"iter"

	casedb "github.com/allthingslinux/tux-sub001/app/modules/moderation/infrastructure/repositories"
	"github.com/allthingslinux/tux-sub001/app/shared/sharedtypes"
)

// iterPageSize is the number of cases fetched per backend round trip.
const iterPageSize = 100

// IterCases returns a lazy sequence over matching cases, newest first.
// Pages are fetched on demand; ranging over the sequence again restarts
// from the first page. A non-nil error terminates the sequence.
func (s *CaseService) IterCases(ctx context.Context, guildID sharedtypes.GuildID, filter casedb.CaseFilter) iter.Seq2[casedb.Case, error] {
	return func(yield func(casedb.Case, error) bool) {
		page := filter
		page.Limit = iterPageSize
		page.Offset = filter.Offset

		for {
			cases, err := s.GetCasesByFilter(ctx, guildID, page)
			if err != nil {
				yield(casedb.Case{}, err)
				return
			}
			for _, c := range cases {
				if !yield(c, nil) {
					return
				}
			}
			if len(cases) < iterPageSize {
				return
			}
			page.Offset += iterPageSize
		}
	}
}
