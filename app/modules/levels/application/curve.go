package levelsservice

import "math"

// LevelForXP maps accumulated XP to a level: level n starts at 25·n² XP,
// so level = floor(sqrt(xp) / 5). The stored level column is always this
// function of the stored xp; the two are never written independently.
func LevelForXP(xp float64) int64 {
	if xp <= 0 {
		return 0
	}
	return int64(math.Sqrt(xp) / 5)
}

// XPForLevel returns the XP at which the given level begins.
func XPForLevel(level int64) float64 {
	if level <= 0 {
		return 0
	}
	return 25 * float64(level) * float64(level)
}
