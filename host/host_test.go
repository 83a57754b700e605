package host

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nathoo/petcore/engine"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

var noon = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func testDefs() *state.Defs {
	return &state.Defs{
		Species: map[types.Species]types.SpeciesDef{
			types.SpeciesDog: {
				ID:           types.SpeciesDog,
				Colors:       []string{"golden"},
				DefaultColor: "golden",
				Props:        map[string]string{"treat": "bacon treats", "treat_short": "bacon", "sound": "Woof woof!"},
				Stages:       []types.StageDef{{Name: "Puppy", MinLevel: 1, Abilities: []string{"Wag"}}},
			},
			types.SpeciesCat: {
				ID:           types.SpeciesCat,
				Colors:       []string{"orange"},
				DefaultColor: "orange",
				Props:        map[string]string{"treat": "tuna", "treat_short": "tuna", "sound": "Meow meow!"},
			},
		},
		Accessories: []types.AccessoryDef{
			{ID: "party_hat", Name: "Party Hat", MinLevel: 1},
			{ID: "crown", Name: "Royal Crown", MinLevel: 5},
			{ID: "yarn", Name: "Ball of Yarn", MinLevel: 1, Species: []types.Species{types.SpeciesCat}},
		},
		Achievements: []types.AchievementDef{
			{ID: "First Photo", Name: "First Photo", Description: "Take a photo", Rarity: "common", XPReward: 10},
			{ID: "Game Master", Name: "Game Master", Rarity: "rare", XPReward: 50},
		},
	}
}

func newTestHost() *Host {
	eng := engine.New(testDefs(), engine.WithSeed(1), engine.WithClock(func() time.Time { return noon }))
	h := New(eng)
	h.Loc = time.UTC
	return h
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func joined(lines []Line) string {
	return strings.Join(texts(lines), "\n")
}

func TestIsCommand(t *testing.T) {
	for in, want := range map[string]bool{"/help": true, "  /quit": true, "hello": false, "": false} {
		if got := IsCommand(in); got != want {
			t.Errorf("IsCommand(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExec_QuitAndUnknown(t *testing.T) {
	h := newTestHost()
	ctx := context.Background()

	if _, quit := h.Exec(ctx, "/quit"); !quit {
		t.Error("/quit should quit")
	}
	if _, quit := h.Exec(ctx, "/EXIT"); !quit {
		t.Error("/exit is case-insensitive")
	}

	lines, quit := h.Exec(ctx, "/dance")
	if quit {
		t.Error("unknown command should not quit")
	}
	want := []Line{{Kind: KindSystem, Text: "Unknown command: /dance. Type /help for available commands."}}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExec_Stats(t *testing.T) {
	h := newTestHost()
	lines, _ := h.Exec(context.Background(), "/stats")
	want := []string{
		"Buddy the golden dog (Puppy)",
		"Level 1  XP 0/100",
		"Happiness 80  Energy 90  Hunger 70  Intelligence 50",
		"Playfulness 50  Affection 50  Curiosity 50  Independence 50",
		"Feeling: Happy",
		"Wearing: nothing",
		"Abilities: Wag",
	}
	if diff := cmp.Diff(want, texts(lines)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExec_Trace(t *testing.T) {
	h := newTestHost()
	ctx := context.Background()

	h.Exec(ctx, "/trace")
	if !h.Trace {
		t.Fatal("trace should be on")
	}
	lines := h.Render(h.Engine.ProcessMessage("hello"))
	last := lines[len(lines)-1]
	if last.Kind != KindTrace || !strings.Contains(last.Text, "rule=greeting") {
		t.Errorf("trace line = %+v", last)
	}

	h.Exec(ctx, "/trace")
	if h.Trace {
		t.Error("trace should toggle off")
	}
}

func TestExec_Game(t *testing.T) {
	h := newTestHost()
	ctx := context.Background()

	lines, _ := h.Exec(ctx, "/game memory 90")
	if lines[0].Kind != KindPet {
		t.Errorf("first line should be the pet's reaction, got %+v", lines[0])
	}
	if !strings.Contains(joined(lines), "Achievement unlocked: Game Master (rare)") {
		t.Errorf("missing unlock:\n%s", joined(lines))
	}
	if h.Engine.State.Pet.Experience != 90 {
		t.Errorf("Experience = %d, want 90", h.Engine.State.Pet.Experience)
	}

	for _, in := range []string{"/game", "/game memory", "/game memory lots"} {
		lines, _ := h.Exec(ctx, in)
		if len(lines) != 1 || lines[0].Kind != KindSystem {
			t.Errorf("%q: expected a usage line, got %+v", in, lines)
		}
	}

	lines, _ = h.Exec(ctx, "/game chess 10")
	if !strings.Contains(joined(lines), "chess") {
		t.Errorf("unknown game should be refused: %v", texts(lines))
	}
}

func TestExec_SettingsAndAccessories(t *testing.T) {
	h := newTestHost()
	ctx := context.Background()

	lines, _ := h.Exec(ctx, "/accessories")
	want := []string{
		"Accessories for a dog:",
		"    Party Hat [party_hat]",
		"    Royal Crown (unlocks at level 5)",
	}
	if diff := cmp.Diff(want, texts(lines)); diff != "" {
		t.Errorf("dog accessories (-want +got):\n%s", diff)
	}

	lines, _ = h.Exec(ctx, "/settings Mochi cat")
	if lines[0].Text != "Great! My name is now Mochi, and I'm a orange cat!" {
		t.Errorf("settings line = %q", lines[0].Text)
	}

	h.Exec(ctx, "/wear yarn")
	lines, _ = h.Exec(ctx, "/accessories")
	if !strings.Contains(joined(lines), "* Ball of Yarn [yarn] (wearing)") {
		t.Errorf("yarn should be worn:\n%s", joined(lines))
	}

	lines, _ = h.Exec(ctx, "/wear none")
	if !strings.Contains(lines[0].Text, "Ball of Yarn") || h.Engine.State.Pet.Equipped != "" {
		t.Errorf("unequip: %v", texts(lines))
	}

	if lines, _ := h.Exec(ctx, "/settings Mochi"); lines[0].Kind != KindSystem {
		t.Errorf("missing species should print usage, got %+v", lines)
	}
}

func TestExec_PhotoAndAchievements(t *testing.T) {
	h := newTestHost()
	ctx := context.Background()

	lines, _ := h.Exec(ctx, "/photo")
	out := joined(lines)
	if !strings.Contains(out, "Achievement unlocked: First Photo") {
		t.Errorf("missing unlock:\n%s", out)
	}
	if !strings.Contains(out, "Photo: Buddy the golden dog, level 1 Puppy, feeling happy.") {
		t.Errorf("missing share panel:\n%s", out)
	}

	lines, _ = h.Exec(ctx, "/achievements")
	want := []string{
		"[x] First Photo (common, 10 XP): Take a photo",
		"[ ] Game Master (rare, 50 XP)",
		"1/2 unlocked",
	}
	if diff := cmp.Diff(want, texts(lines)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExec_Memory(t *testing.T) {
	h := newTestHost()
	ctx := context.Background()

	lines, _ := h.Exec(ctx, "/memory")
	if len(lines) != 1 || !strings.HasPrefix(lines[0].Text, "No memories yet") {
		t.Errorf("empty memory = %v", texts(lines))
	}

	h.Engine.ProcessMessage("my name is Sam")
	lines, _ = h.Exec(ctx, "/memory")
	out := texts(lines)
	if out[0] != "Things I know about you:" || out[1] != "  Personal Information: User's name is Sam" {
		t.Errorf("facts = %v", out)
	}
	if out[2] != "Sat Mar 14, 2026" || out[3] != "  12:00 You: my name is Sam" {
		t.Errorf("history = %v", out)
	}
	if !strings.HasPrefix(out[4], "  12:00 Buddy: ") {
		t.Errorf("pet line = %q", out[4])
	}
}

func TestRender_Order(t *testing.T) {
	h := newTestHost()
	r := types.Result{
		Utterance:     "hi",
		Announcements: []string{"level 2"},
		Unlocked:      []string{"Level Up"},
		Panels:        []types.Panel{types.PanelGames},
	}
	var kinds []Kind
	for _, l := range h.Render(r) {
		kinds = append(kinds, l.Kind)
	}
	want := []Kind{KindPet, KindAnnouncement, KindUnlock, KindPanel, KindPanel}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
