package rules

import "strings"

// keywords returns a predicate that holds when the lowercased message
// contains any of words as a substring.
func keywords(words ...string) func(env *Env) bool {
	return func(env *Env) bool {
		return containsAny(env.Ctx.Lower, words...)
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func playful(env *Env) bool {
	return env.Pet.Personality.Playfulness > env.Tuning.PersonalityThreshold
}

func affectionate(env *Env) bool {
	return env.Pet.Personality.Affection > env.Tuning.PersonalityThreshold
}

func curious(env *Env) bool {
	return env.Pet.Personality.Curiosity > env.Tuning.PersonalityThreshold
}
