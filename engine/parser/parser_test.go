package parser

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 30, 0, 0, time.Local)
}

func user(text string) types.Message {
	return types.Message{Text: text, Sender: types.SenderUser}
}

func pet(text string) types.Message {
	return types.Message{Text: text, Sender: types.SenderPet}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "How are you", []string{"how", "are", "you"}},
		{"punctuation", "Hello, world!", []string{"hello", "world"}},
		{"apostrophe splits", "I'm fine", []string{"i", "m", "fine"}},
		{"underscore kept", "snake_case", []string{"snake_case"}},
		{"empty", "  ?! ", nil},
		{"blank", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Tokens(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "tell me about dinosaurs", "tell me about dinosaurs", 0.75},
		{"only short words", "how are you", "how are you", 0},
		{"one long word of five", "how are you doing today", "how are you doing", 0.2},
		{"disjoint", "bananas apples", "cherries grapes", 0},
		{"empty", "", "", 0},
		{"long words only", "wonderful sunny weather", "wonderful sunny weather", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b, 4)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		hour int
		want types.TimeOfDay
	}{
		{4, types.Night},
		{5, types.Morning},
		{11, types.Morning},
		{12, types.Day},
		{16, types.Day},
		{17, types.Evening},
		{19, types.Evening},
		{20, types.Night},
		{0, types.Night},
	}
	for _, tt := range tests {
		if got := TimeOfDay(at(tt.hour)); got != tt.want {
			t.Errorf("TimeOfDay(%d:30) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestExtract_Flags(t *testing.T) {
	tun := state.DefaultTuning()
	p := &types.Profile{
		Name:  "Buddy",
		Stats: types.Stats{Happiness: 20, Energy: 29, Hunger: 30, Intelligence: 50},
	}

	ctx := Extract("  Hey BUDDY, want to play a Game?  ", p, nil, at(9), tun)

	if ctx.Lower != "hey buddy, want to play a game?" {
		t.Errorf("Lower = %q", ctx.Lower)
	}
	if !ctx.MentionsName {
		t.Error("MentionsName should be true")
	}
	if !ctx.WantsToPlay {
		t.Error("WantsToPlay should be true")
	}
	if ctx.Hungry {
		t.Error("hunger 30 is not below threshold")
	}
	if !ctx.Tired || !ctx.Unhappy {
		t.Errorf("Tired=%v Unhappy=%v, want both true", ctx.Tired, ctx.Unhappy)
	}
	if ctx.TimeOfDay != types.Morning {
		t.Errorf("TimeOfDay = %q, want morning", ctx.TimeOfDay)
	}
}

func TestExtract_RepeatedTopic(t *testing.T) {
	tun := state.DefaultTuning()
	p := &types.Profile{Name: "Buddy", Stats: types.Stats{Happiness: 80, Energy: 90, Hunger: 70}}

	recent := []types.Message{
		user("Tell me about dinosaurs"),
		pet("Tell me about dinosaurs yourself!"),
	}

	ctx := Extract("tell me about dinosaurs", p, recent, at(14), tun)
	if !ctx.RepeatedTopic {
		t.Error("exact repeat should be flagged")
	}

	ctx = Extract("what about birds", p, recent, at(14), tun)
	if ctx.RepeatedTopic {
		t.Error("different topic should not be flagged")
	}

	// Pet messages never count.
	ctx = Extract("Tell me about dinosaurs yourself!", p, recent[1:], at(14), tun)
	if ctx.RepeatedTopic {
		t.Error("pet-authored entries should be ignored")
	}
}

func TestExtract_ThresholdIsTunable(t *testing.T) {
	tun := state.DefaultTuning()
	tun.RepeatThreshold = 0.1
	p := &types.Profile{Name: "Buddy"}
	recent := []types.Message{user("How are you doing today")}

	ctx := Extract("How are you doing", p, recent, at(14), tun)
	if !ctx.RepeatedTopic {
		t.Error("similarity 0.2 should exceed a 0.1 threshold")
	}
}

func TestRecent(t *testing.T) {
	var log []types.Message
	for i := 0; i < 15; i++ {
		log = append(log, user("m"))
	}
	if got := len(Recent(log, 10)); got != 10 {
		t.Errorf("Recent(15, 10) len = %d", got)
	}
	if got := len(Recent(log[:3], 10)); got != 3 {
		t.Errorf("Recent(3, 10) len = %d", got)
	}
}
