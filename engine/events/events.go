// Package events implements single-pass achievement dispatch.
// Each trigger event is checked against every predicate listening for its
// kind; unlocking is idempotent.
package events

import (
	"strings"
	"time"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// Kind is the type of trigger an event represents.
type Kind string

const (
	Message Kind = "message"
	Game    Kind = "game"
	Photo   Kind = "photo"
	LevelUp Kind = "level_up"
)

// Event is one trigger raised by an engine operation.
type Event struct {
	Kind   Kind
	Lower  string // lowercased user message, Message only
	Score  int    // Game only
	LogLen int    // log length before the exchange, Message only
	Now    time.Time
}

// Predicate unlocks ID when When holds for an event of a listened kind.
// Panel, if set, is requested every time the predicate holds.
type Predicate struct {
	ID    string
	On    []Kind
	When  func(ev Event, s *types.State) bool
	Panel types.Panel
}

// StreakDays is the number of consecutive days needed for Daily Streak.
const StreakDays = 7

// Achievements is the default predicate table.
var Achievements = []Predicate{
	{
		ID:   "First Conversation",
		On:   []Kind{Message},
		When: func(ev Event, _ *types.State) bool { return ev.LogLen == 3 },
	},
	{
		ID:   "Chatty Friend",
		On:   []Kind{Message},
		When: func(ev Event, _ *types.State) bool { return ev.LogLen >= 20 },
	},
	{
		ID:   "Best Friends",
		On:   []Kind{Message},
		When: func(_ Event, s *types.State) bool { return s.Pet.Emotion == types.EmotionLoving },
	},
	{
		ID:   "Excitement Master",
		On:   []Kind{Message},
		When: func(_ Event, s *types.State) bool { return s.Pet.Emotion == types.EmotionExcited },
	},
	{
		ID:    "Game Starter",
		On:    []Kind{Message},
		When:  func(ev Event, _ *types.State) bool { return strings.Contains(ev.Lower, "play game") },
		Panel: types.PanelGames,
	},
	{
		ID: "Fashion Sense",
		On: []Kind{Message},
		When: func(ev Event, _ *types.State) bool {
			return strings.Contains(ev.Lower, "accessory") || strings.Contains(ev.Lower, "wear") || strings.Contains(ev.Lower, "dress")
		},
		Panel: types.PanelAccessories,
	},
	{
		ID:   "Genius Pet",
		On:   []Kind{Message, Game},
		When: func(_ Event, s *types.State) bool { return s.Pet.Stats.Intelligence >= 80 },
	},
	{
		ID:   "Game Master",
		On:   []Kind{Game},
		When: func(ev Event, _ *types.State) bool { return ev.Score > 80 },
	},
	{
		ID:   "First Photo",
		On:   []Kind{Photo},
		When: func(Event, *types.State) bool { return true },
	},
	{
		ID:   "Level Up",
		On:   []Kind{LevelUp},
		When: func(Event, *types.State) bool { return true },
	},
	{
		ID:   "Master Trainer",
		On:   []Kind{LevelUp},
		When: func(_ Event, s *types.State) bool { return s.Pet.Level >= 20 },
	},
	{
		ID:   "Daily Streak",
		On:   []Kind{Message},
		When: func(ev Event, s *types.State) bool { return Streak(s.Log, ev.Now) >= StreakDays },
	},
}

// Outcome is what one dispatch pass produced.
type Outcome struct {
	Unlocked []string
	Panels   []types.Panel
}

// Dispatch runs the default predicates against evs.
func Dispatch(evs []Event, s *types.State) Outcome {
	return DispatchFrom(Achievements, evs, s)
}

// DispatchFrom runs table against evs. Single pass, no recursion.
func DispatchFrom(table []Predicate, evs []Event, s *types.State) Outcome {
	var out Outcome
	for _, ev := range evs {
		for _, pred := range table {
			if !listens(pred, ev.Kind) || !pred.When(ev, s) {
				continue
			}
			if pred.Panel != "" && !hasPanel(out.Panels, pred.Panel) {
				out.Panels = append(out.Panels, pred.Panel)
			}
			if state.Unlock(&s.Pet, pred.ID) {
				out.Unlocked = append(out.Unlocked, pred.ID)
			}
		}
	}
	return out
}

// Streak counts consecutive calendar days, ending on now's day, on which
// the user sent at least one message.
func Streak(log []types.Message, now time.Time) int {
	loc := now.Location()
	days := map[string]bool{}
	for _, m := range log {
		if m.Sender == types.SenderUser {
			days[dayKey(time.UnixMilli(m.Timestamp).In(loc))] = true
		}
	}

	n := 0
	for d := now; days[dayKey(d)]; d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func listens(p Predicate, k Kind) bool {
	for _, on := range p.On {
		if on == k {
			return true
		}
	}
	return false
}

func hasPanel(panels []types.Panel, p types.Panel) bool {
	for _, v := range panels {
		if v == p {
			return true
		}
	}
	return false
}
