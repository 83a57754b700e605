package loader

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nathoo/petcore/types"
	lua "github.com/yuin/gopher-lua"
)

// runLua executes Lua code with the API registered and returns the collector.
func runLua(t *testing.T, code string) *collector {
	t.Helper()
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	if err := L.DoString(code); err != nil {
		t.Fatalf("Lua error: %v", err)
	}
	return coll
}

func TestCompile_Species(t *testing.T) {
	coll := runLua(t, `
		Species "bird" {
			colors = { "blue", "red" },
			default_color = "blue",
			props = { sound = "Tweet!", ignored = 3 },
			stages = { { name = "Hatchling", min_level = 1, abilities = { "Chirping" } } },
		}
	`)
	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := types.SpeciesDef{
		ID:           types.SpeciesBird,
		Colors:       []string{"blue", "red"},
		DefaultColor: "blue",
		Props:        map[string]string{"sound": "Tweet!"},
		Stages:       []types.StageDef{{Name: "Hatchling", MinLevel: 1, Abilities: []string{"Chirping"}}},
	}
	if diff := cmp.Diff(want, defs.Species[types.SpeciesBird]); diff != "" {
		t.Errorf("species mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_AccessoriesKeepOrder(t *testing.T) {
	coll := runLua(t, `
		local all = { "dog", "cat" }
		Accessory "crown" { name = "Royal Crown", category = "hats", min_level = 5, species = all }
		Accessory "ball" { name = "Bouncy Ball", category = "toys", species = { "dog" } }
	`)
	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := []types.AccessoryDef{
		{ID: "crown", Name: "Royal Crown", Category: "hats", MinLevel: 5, Species: []types.Species{"dog", "cat"}},
		{ID: "ball", Name: "Bouncy Ball", Category: "toys", MinLevel: 1, Species: []types.Species{"dog"}},
	}
	if diff := cmp.Diff(want, defs.Accessories); diff != "" {
		t.Errorf("accessories mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_Achievements(t *testing.T) {
	coll := runLua(t, `
		Achievement "Level Up" { description = "Gained a level", rarity = "common", xp = 50 }
		Achievement "first_photo" { name = "First Photo", rarity = "common" }
	`)
	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(defs.Achievements) != 2 {
		t.Fatalf("achievements = %d, want 2", len(defs.Achievements))
	}
	a, b := defs.Achievements[0], defs.Achievements[1]
	if a.Name != "Level Up" || a.XPReward != 50 {
		t.Errorf("name defaults to id: %+v", a)
	}
	if b.Name != "First Photo" || b.SourceOrder <= a.SourceOrder {
		t.Errorf("second achievement = %+v", b)
	}
}

func TestCompile_Duplicates(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"species", `Species "dog" { colors = {"a"}, default_color = "a" } Species "dog" { colors = {"a"}, default_color = "a" }`},
		{"accessory", `Accessory "hat" { name = "Hat" } Accessory "hat" { name = "Hat" }`},
		{"achievement", `Achievement "x" {} Achievement "x" {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compile(runLua(t, tt.code))
			if err == nil || !strings.Contains(err.Error(), "more than once") {
				t.Errorf("expected duplicate error, got %v", err)
			}
		})
	}
}

func TestCompile_BadStage(t *testing.T) {
	coll := runLua(t, `Species "dog" { colors = {"a"}, default_color = "a", stages = { "Puppy" } }`)
	if _, err := compile(coll); err == nil {
		t.Error("expected error for non-table stage")
	}
}

func TestCompile_Jokes(t *testing.T) {
	coll := runLua(t, `
		Joke "one"
		Joke "two {species.magic}"
	`)
	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two {species.magic}"}, defs.Jokes); diff != "" {
		t.Errorf("jokes mismatch (-want +got):\n%s", diff)
	}
}
