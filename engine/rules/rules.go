// Package rules implements the response selector: an ordered table of
// {ID, When, Then} rules evaluated top to bottom, first match wins.
package rules

import (
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// Rand is the injectable random source for joke and fallback picks.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Env is everything a rule may look at.
type Env struct {
	Ctx    types.Context
	Pet    *types.Profile
	Recent []types.Message // window preceding the message
	Defs   *state.Defs
	Tuning types.Tuning
	Rand   Rand
}

// Reply is the selected response before decoration.
type Reply struct {
	Text    string
	Emotion types.Emotion
	Panels  []types.Panel
}

// Rule pairs a predicate with the handler producing its reply.
type Rule struct {
	ID   string
	When func(env *Env) bool
	Then func(env *Env) Reply
}

// FallbackID identifies replies drawn from the fallback pool.
const FallbackID = "fallback"

// Select runs env through the default table. Returns the reply and the ID
// of the rule that produced it.
func Select(env *Env) (Reply, string) {
	return SelectFrom(Table, env)
}

// SelectFrom evaluates table in order and returns the first matching
// rule's reply, or a pick from the fallback pool when none match.
func SelectFrom(table []Rule, env *Env) (Reply, string) {
	if rule := Match(table, env); rule != nil {
		return rule.Then(env), rule.ID
	}
	return Fallback(env), FallbackID
}

// Match returns the first rule whose predicate holds, or nil.
func Match(table []Rule, env *Env) *Rule {
	for i := range table {
		if table[i].When(env) {
			return &table[i]
		}
	}
	return nil
}

// Fallback picks uniformly from the personality-driven response pool.
func Fallback(env *Env) Reply {
	pool := FallbackPool(env.Pet.Personality, env.Tuning.PersonalityThreshold)
	return pool[env.Rand.Intn(len(pool))]
}

// FallbackPool builds the fallback options. Each trait above threshold adds
// two options; with fewer than two options the generic ones are appended.
func FallbackPool(p types.Personality, threshold int) []Reply {
	var pool []Reply
	if p.Playfulness > threshold {
		pool = append(pool,
			Reply{Text: "That's interesting! Want to play a game while we chat?", Emotion: types.EmotionPlayful},
			Reply{Text: "Cool! Hey, did you see that toy over there? Wanna play?", Emotion: types.EmotionExcited},
		)
	}
	if p.Affection > threshold {
		pool = append(pool,
			Reply{Text: "I'm so glad we're chatting today! You always make me feel special.", Emotion: types.EmotionLoving},
			Reply{Text: "I love spending time with you like this. Tell me more!", Emotion: types.EmotionHappy},
		)
	}
	if p.Curiosity > threshold {
		pool = append(pool,
			Reply{Text: "Hmm, that's fascinating! I wonder what else we could learn about that?", Emotion: types.EmotionCurious},
			Reply{Text: "I'm thinking about what you said... it opens up so many possibilities!", Emotion: types.EmotionThinking},
		)
	}
	if p.Independence > threshold {
		pool = append(pool,
			Reply{Text: "That's an interesting perspective. I've been thinking about that differently.", Emotion: types.EmotionThinking},
			Reply{Text: "I appreciate you sharing that with me. I've been exploring some ideas on my own too.", Emotion: types.EmotionCurious},
		)
	}
	if len(pool) < 2 {
		pool = append(pool,
			Reply{Text: "I'm listening! Tell me more about that.", Emotion: types.EmotionCurious},
			Reply{Text: "That's interesting! What else is on your mind?", Emotion: types.EmotionHappy},
			Reply{Text: "I'm so glad we're chatting today!", Emotion: types.EmotionExcited},
			Reply{Text: "Hmm, I'm thinking about what you said...", Emotion: types.EmotionThinking},
		)
	}
	return pool
}
