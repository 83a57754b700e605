// Package parser derives the per-message context record.
// Intentionally dumb: no NLP, just lowercase substring and word matching.
package parser

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nathoo/petcore/types"
)

// Extract builds the context for input against the pet's current state.
// recent is the window of log entries preceding the message.
func Extract(input string, p *types.Profile, recent []types.Message, now time.Time, t types.Tuning) types.Context {
	lower := strings.ToLower(strings.TrimSpace(input))

	ctx := types.Context{
		Raw:       input,
		Lower:     lower,
		Hungry:    p.Stats.Hunger < t.LowStatThreshold,
		Tired:     p.Stats.Energy < t.LowStatThreshold,
		Unhappy:   p.Stats.Happiness < t.LowStatThreshold,
		TimeOfDay: TimeOfDay(now),
	}

	if name := strings.ToLower(p.Name); name != "" {
		ctx.MentionsName = strings.Contains(lower, name)
	}
	ctx.WantsToPlay = strings.Contains(lower, "play") || strings.Contains(lower, "game")
	ctx.RepeatedTopic = Repeated(lower, recent, t)

	return ctx
}

// Repeated reports whether any prior user message in recent is similar
// enough to lower to count as the same topic.
func Repeated(lower string, recent []types.Message, t types.Tuning) bool {
	for _, m := range recent {
		if m.Sender != types.SenderUser {
			continue
		}
		if Similarity(m.Text, lower, t.MinWordLen) > t.RepeatThreshold {
			return true
		}
	}
	return false
}

// Similarity counts the words of a at least minLen runes long that also
// appear in b, divided by the larger word count of the two.
func Similarity(a, b string, minLen int) float64 {
	wa, wb := Tokens(a), Tokens(b)
	n := max(len(wa), len(wb))
	if n == 0 {
		return 0
	}

	inB := make(map[string]bool, len(wb))
	for _, w := range wb {
		inB[w] = true
	}

	matches := 0
	for _, w := range wa {
		if utf8.RuneCountInString(w) >= minLen && inB[w] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}

// Tokens lowercases s and splits it on every rune that is not a letter,
// digit or underscore. Empty tokens are dropped.
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
}

// TimeOfDay buckets the local hour of now.
func TimeOfDay(now time.Time) types.TimeOfDay {
	h := now.Hour()
	switch {
	case h >= 5 && h < 12:
		return types.Morning
	case h >= 12 && h < 17:
		return types.Day
	case h >= 17 && h < 20:
		return types.Evening
	default:
		return types.Night
	}
}

// Recent returns the last n entries of log.
func Recent(log []types.Message, n int) []types.Message {
	if n <= 0 || len(log) <= n {
		return log
	}
	return log[len(log)-n:]
}
