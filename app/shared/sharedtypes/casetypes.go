package sharedtypes

// CaseType enumerates moderation actions recorded in the audit trail.
type CaseType string

const (
	CaseTypeBan          CaseType = "BAN"
	CaseTypeUnban        CaseType = "UNBAN"
	CaseTypeKick         CaseType = "KICK"
	CaseTypeJail         CaseType = "JAIL"
	CaseTypeUnjail       CaseType = "UNJAIL"
	CaseTypeWarn         CaseType = "WARN"
	CaseTypeUnwarn       CaseType = "UNWARN"
	CaseTypeTimeout      CaseType = "TIMEOUT"
	CaseTypeUntimeout    CaseType = "UNTIMEOUT"
	CaseTypePollBan      CaseType = "POLLBAN"
	CaseTypePollUnban    CaseType = "POLLUNBAN"
	CaseTypeSnippetBan   CaseType = "SNIPPETBAN"
	CaseTypeSnippetUnban CaseType = "SNIPPETUNBAN"
)

func (t CaseType) String() string { return string(t) }

// RestrictionCategory groups an activating/deactivating case-type pair.
// A user holds at most one in-effect activating case per category.
type RestrictionCategory string

const (
	CategoryBan        RestrictionCategory = "ban"
	CategoryJail       RestrictionCategory = "jail"
	CategoryWarn       RestrictionCategory = "warn"
	CategoryTimeout    RestrictionCategory = "timeout"
	CategoryPollBan    RestrictionCategory = "pollban"
	CategorySnippetBan RestrictionCategory = "snippetban"
)

func (c RestrictionCategory) String() string { return string(c) }

// categoryPairs maps each category to its activating and deactivating types.
// KICK is deliberately absent: it is a point-in-time action with no
// deactivator and is never "in effect".
var categoryPairs = map[RestrictionCategory][2]CaseType{
	CategoryBan:        {CaseTypeBan, CaseTypeUnban},
	CategoryJail:       {CaseTypeJail, CaseTypeUnjail},
	CategoryWarn:       {CaseTypeWarn, CaseTypeUnwarn},
	CategoryTimeout:    {CaseTypeTimeout, CaseTypeUntimeout},
	CategoryPollBan:    {CaseTypePollBan, CaseTypePollUnban},
	CategorySnippetBan: {CaseTypeSnippetBan, CaseTypeSnippetUnban},
}

// Valid reports whether the category is known.
func (c RestrictionCategory) Valid() bool {
	_, ok := categoryPairs[c]
	return ok
}

// Activating returns the case type that puts the restriction in effect.
func (c RestrictionCategory) Activating() CaseType { return categoryPairs[c][0] }

// Deactivating returns the case type that lifts the restriction.
func (c RestrictionCategory) Deactivating() CaseType { return categoryPairs[c][1] }

// CaseTypes returns both members of the pair, activating first.
func (c RestrictionCategory) CaseTypes() []CaseType {
	pair, ok := categoryPairs[c]
	if !ok {
		return nil
	}
	return []CaseType{pair[0], pair[1]}
}

// Valid reports whether the case type is a known member of the enum.
func (t CaseType) Valid() bool {
	if t == CaseTypeKick {
		return true
	}
	for _, pair := range categoryPairs {
		if t == pair[0] || t == pair[1] {
			return true
		}
	}
	return false
}

// Category returns the restriction category the case type belongs to.
// The second return is false for uncategorized types such as KICK.
func (t CaseType) Category() (RestrictionCategory, bool) {
	for cat, pair := range categoryPairs {
		if t == pair[0] || t == pair[1] {
			return cat, true
		}
	}
	return "", false
}

// IsActivating reports whether the case type puts a restriction in effect.
func (t CaseType) IsActivating() bool {
	for _, pair := range categoryPairs {
		if t == pair[0] {
			return true
		}
	}
	return false
}
