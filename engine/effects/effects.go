// Package effects implements centralized stat mutation via Apply.
// Every delta for one message is computed from the same pre-mutation snapshot.
package effects

import (
	"strings"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// Delta records the change applied to a pet by one update pass.
type Delta struct {
	Stats       types.Stats
	Personality types.Personality
}

// Apply updates the pet's vital stats and personality for one message.
// lower is the lowercased message and emotion the reply's emotion.
// Returns the effective (post-clamp) change.
func Apply(p *types.Profile, lower string, emotion types.Emotion) Delta {
	before := p.Stats
	beforeTraits := p.Personality

	next := before
	switch {
	case containsAny(lower, "good", "love", "happy") || isOneOf(emotion, types.EmotionHappy, types.EmotionExcited, types.EmotionLoving):
		next.Happiness += 5
	case containsAny(lower, "bad", "sad", "angry") || isOneOf(emotion, types.EmotionSad, types.EmotionScared):
		next.Happiness -= 3
	}

	switch {
	case containsAny(lower, "play", "run", "exercise") || isOneOf(emotion, types.EmotionExcited, types.EmotionPlayful):
		next.Energy -= 5
	case containsAny(lower, "rest", "sleep") || emotion == types.EmotionSleepy:
		next.Energy += 10
	}

	if containsAny(lower, "food", "eat", "treat") || emotion == types.EmotionHungry {
		next.Hunger += 15
	} else {
		next.Hunger--
	}

	if containsAny(lower, "learn", "smart", "teach") || isOneOf(emotion, types.EmotionCurious, types.EmotionThinking) {
		next.Intelligence += 2
	}

	traits := beforeTraits
	if containsAny(lower, "play", "fun", "game") {
		traits.Playfulness++
	}
	if containsAny(lower, "love", "hug", "pet") {
		traits.Affection++
	}
	if containsAny(lower, "what", "why", "how") {
		traits.Curiosity++
	}
	if containsAny(lower, "alone", "space", "yourself") {
		traits.Independence++
	}

	p.Stats = state.ClampStats(next)
	p.Personality = state.ClampPersonality(traits)

	return Delta{
		Stats:       subStats(p.Stats, before),
		Personality: subTraits(p.Personality, beforeTraits),
	}
}

// Adjust adds d to the pet's vital stats, clamping each one.
func Adjust(p *types.Profile, d types.Stats) Delta {
	before := p.Stats
	p.Stats = state.ClampStats(types.Stats{
		Happiness:    before.Happiness + d.Happiness,
		Energy:       before.Energy + d.Energy,
		Hunger:       before.Hunger + d.Hunger,
		Intelligence: before.Intelligence + d.Intelligence,
	})
	return Delta{Stats: subStats(p.Stats, before)}
}

// AbsencePenalty lowers happiness after days away. The penalty is capped
// and never pushes happiness below the floor; a pet already at or below
// the floor is left alone.
func AbsencePenalty(p *types.Profile, days int, t types.Tuning) int {
	if days <= 0 || p.Stats.Happiness <= t.AbsenceFloor {
		return 0
	}
	penalty := min(t.AbsencePerDay*days, t.AbsenceCap)
	before := p.Stats.Happiness
	p.Stats.Happiness = max(before-penalty, t.AbsenceFloor)
	return before - p.Stats.Happiness
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isOneOf(e types.Emotion, set ...types.Emotion) bool {
	for _, v := range set {
		if e == v {
			return true
		}
	}
	return false
}

func subStats(a, b types.Stats) types.Stats {
	return types.Stats{
		Happiness:    a.Happiness - b.Happiness,
		Energy:       a.Energy - b.Energy,
		Hunger:       a.Hunger - b.Hunger,
		Intelligence: a.Intelligence - b.Intelligence,
	}
}

func subTraits(a, b types.Personality) types.Personality {
	return types.Personality{
		Playfulness:  a.Playfulness - b.Playfulness,
		Affection:    a.Affection - b.Affection,
		Curiosity:    a.Curiosity - b.Curiosity,
		Independence: a.Independence - b.Independence,
	}
}
