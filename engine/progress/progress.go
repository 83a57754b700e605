// Package progress implements experience gain, the level-up loop and the
// stat deltas of finished games.
package progress

import (
	"math"
	"unicode/utf8"

	"github.com/nathoo/petcore/types"
)

const (
	// MaxAward caps the experience a single event can grant.
	MaxAward = 1000
	// MaxGameScore caps a reported mini-game score.
	MaxGameScore = 1000
)

// MessageXP is the experience earned by one user message.
func MessageXP(text string, t types.Tuning) int {
	per := t.XPCharsPerPoint
	if per <= 0 {
		per = 10
	}
	return t.BaseXP + utf8.RuneCountInString(text)/per
}

// Threshold is the experience needed to leave level.
func Threshold(level int) int {
	return level * 100
}

// ClampScore bounds a game score to [0, MaxGameScore].
func ClampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > MaxGameScore:
		return MaxGameScore
	}
	return score
}

// AwardXP adds xp (capped at MaxAward) and levels the pet up once per
// threshold crossed. The threshold is fixed at the level the pet had before
// the award, so a level-1 pet given 250 XP ends at level 3 with 50. Returns
// the levels reached, in order.
func AwardXP(p *types.Profile, xp int) []int {
	if xp > MaxAward {
		xp = MaxAward
	}
	if xp > 0 {
		p.Experience = addSat(p.Experience, xp)
	}
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}

	threshold := Threshold(p.Level)
	var reached []int
	for p.Experience >= threshold {
		p.Experience -= threshold
		p.Level++
		reached = append(reached, p.Level)
	}
	return reached
}

// addSat adds two non-negative ints, saturating at math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// GameDelta returns the stat change for a finished game.
func GameDelta(game types.GameType, score int) types.Stats {
	switch game {
	case types.GameMemory:
		return types.Stats{Intelligence: score / 10}
	case types.GameFetch:
		return types.Stats{Energy: -(score / 5), Happiness: score / 10}
	case types.GamePuzzle:
		return types.Stats{Intelligence: score / 5}
	default:
		return types.Stats{}
	}
}

// ValidGame reports whether game is a known mini-game.
func ValidGame(game types.GameType) bool {
	switch game {
	case types.GameMemory, types.GameFetch, types.GamePuzzle:
		return true
	}
	return false
}
