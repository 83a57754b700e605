// Package memory extracts personal facts from the conversation log and
// groups the log by day for the memory-review surface.
package memory

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nathoo/petcore/types"
)

var (
	namePattern    = regexp.MustCompile(`(?i)my name is (\w+)|i am called (\w+)|i'm (\w+)`)
	likePattern    = regexp.MustCompile(`(?i)i (?:like|love|enjoy) (.+?)(?:\.|!|\?|$)`)
	dislikePattern = regexp.MustCompile(`(?i)i (?:dislike|hate|don't like) (.+?)(?:\.|!|\?|$)`)
	eventPattern   = regexp.MustCompile(`(?i)(?:today|yesterday|tomorrow) (?:is|was|will be) (.+?)(?:\.|!|\?|$)`)
	nameCuePhrases = []string{"my name is", "i am called"}
	likeCuePhrases = []string{"i like", "i love", "my favorite"}
)

// Extract scans every user message in log and returns the facts found,
// deduplicated by content in first-seen order.
func Extract(log []types.Message) []types.Fact {
	var facts []types.Fact
	seen := map[string]bool{}
	add := func(f types.Fact) {
		if seen[f.Content] {
			return
		}
		seen[f.Content] = true
		facts = append(facts, f)
	}

	for _, m := range log {
		if m.Sender != types.SenderUser {
			continue
		}
		if name := firstGroup(namePattern.FindStringSubmatch(m.Text)); name != "" {
			add(types.Fact{Type: types.FactPersonalInfo, Content: "User's name is " + name, Subject: name})
		}
		if sm := likePattern.FindStringSubmatch(m.Text); sm != nil {
			add(types.Fact{Type: types.FactPreference, Content: "User likes " + sm[1], Subject: sm[1]})
		}
		if sm := dislikePattern.FindStringSubmatch(m.Text); sm != nil {
			add(types.Fact{Type: types.FactPreference, Content: "User dislikes " + sm[1], Subject: sm[1]})
		}
		if sm := eventPattern.FindStringSubmatch(m.Text); sm != nil {
			add(types.Fact{Type: types.FactEvent, Content: sm[0], Subject: sm[1]})
		}
	}
	return facts
}

// Recall returns a direct reply about the most relevant fact in recent.
// A name the user introduced takes priority over a stated preference.
func Recall(recent []types.Message) (string, bool) {
	if m, ok := firstUserMatch(recent, nameCuePhrases); ok {
		if name := firstGroup(namePattern.FindStringSubmatch(m.Text)); name != "" {
			return fmt.Sprintf("Of course I remember you, %s! It's great to chat with you again!", name), true
		}
	}

	if m, ok := firstUserMatch(recent, likeCuePhrases); ok {
		if sm := likePattern.FindStringSubmatch(m.Text); sm != nil {
			return fmt.Sprintf("I remember you told me you like %s. That's really interesting!", sm[1]), true
		}
		return fmt.Sprintf("I remember you mentioned that %s. That's really interesting!", strings.TrimSpace(m.Text)), true
	}

	return "", false
}

// Day is one calendar day of conversation.
type Day struct {
	Date     time.Time // midnight in the grouping location
	Messages []types.Message
}

// GroupByDay splits log into calendar days in loc, preserving order.
func GroupByDay(log []types.Message, loc *time.Location) []Day {
	var days []Day
	for _, m := range log {
		t := time.UnixMilli(m.Timestamp).In(loc)
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].Messages = append(days[n-1].Messages, m)
			continue
		}
		days = append(days, Day{Date: date, Messages: []types.Message{m}})
	}
	return days
}

func firstUserMatch(msgs []types.Message, cues []string) (types.Message, bool) {
	for _, m := range msgs {
		if m.Sender != types.SenderUser {
			continue
		}
		lower := strings.ToLower(m.Text)
		for _, c := range cues {
			if strings.Contains(lower, c) {
				return m, true
			}
		}
	}
	return types.Message{}, false
}

func firstGroup(sm []string) string {
	for _, g := range sm[min(1, len(sm)):] {
		if g != "" {
			return g
		}
	}
	return ""
}
