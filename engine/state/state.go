// Package state holds the immutable content catalogs and the helpers that
// read and bound the mutable pet profile.
package state

import (
	"time"

	"github.com/nathoo/petcore/types"
)

// Defs holds the immutable content definitions loaded from Lua.
type Defs struct {
	Species      map[types.Species]types.SpeciesDef
	Accessories  []types.AccessoryDef // catalog order
	Achievements []types.AchievementDef
	Jokes        []string // templates, see dialogue.Interpolate
}

// Default profile values.
const (
	DefaultName    = "Buddy"
	DefaultSpecies = types.SpeciesDog
	DefaultColor   = "golden"
	DefaultEmotion = types.EmotionHappy
)

// DefaultTuning returns the built-in engine constants.
func DefaultTuning() types.Tuning {
	return types.Tuning{
		RepeatThreshold:      0.7,
		MinWordLen:           4,
		RecentWindow:         10,
		PersonalityThreshold: 70,
		LowStatThreshold:     30,
		TimeRemarkChance:     0.3,
		NeedRemarkChance:     0.2,
		ReplyDelay:           800 * time.Millisecond,
		BaseXP:               5,
		XPCharsPerPoint:      10,
		AbsencePerDay:        5,
		AbsenceCap:           60,
		AbsenceFloor:         20,
	}
}

// NewState creates a fresh session with a default pet.
func NewState(defs *Defs) *types.State {
	s := &types.State{
		Pet: types.Profile{
			Name:         DefaultName,
			Species:      DefaultSpecies,
			Color:        DefaultColor,
			Level:        1,
			Experience:   0,
			Emotion:      DefaultEmotion,
			Stats:        types.Stats{Happiness: 80, Energy: 90, Hunger: 70, Intelligence: 50},
			Personality:  types.Personality{Playfulness: 50, Affection: 50, Curiosity: 50, Independence: 50},
			Achievements: []string{},
			Owned:        []string{},
		},
		Log: []types.Message{},
	}
	if sd, ok := defs.Species[DefaultSpecies]; ok && sd.DefaultColor != "" {
		s.Pet.Color = sd.DefaultColor
	}
	SyncAccessories(&s.Pet, defs)
	return s
}

// Clamp bounds v to [0,100].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampStats bounds every vital stat to [0,100].
func ClampStats(st types.Stats) types.Stats {
	return types.Stats{
		Happiness:    Clamp(st.Happiness),
		Energy:       Clamp(st.Energy),
		Hunger:       Clamp(st.Hunger),
		Intelligence: Clamp(st.Intelligence),
	}
}

// ClampPersonality bounds every trait to [0,100].
func ClampPersonality(p types.Personality) types.Personality {
	return types.Personality{
		Playfulness:  Clamp(p.Playfulness),
		Affection:    Clamp(p.Affection),
		Curiosity:    Clamp(p.Curiosity),
		Independence: Clamp(p.Independence),
	}
}

// HasAchievement returns true if the pet already holds the achievement.
func HasAchievement(p *types.Profile, id string) bool {
	return contains(p.Achievements, id)
}

// Unlock appends id to the pet's achievements. Returns false if already held.
func Unlock(p *types.Profile, id string) bool {
	if HasAchievement(p, id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// Owns returns true if the accessory is in the pet's owned set.
func Owns(p *types.Profile, id string) bool {
	return contains(p.Owned, id)
}

// Accessory looks up an accessory by ID.
func Accessory(defs *Defs, id string) (types.AccessoryDef, bool) {
	for _, a := range defs.Accessories {
		if a.ID == id {
			return a, true
		}
	}
	return types.AccessoryDef{}, false
}

// Achievement looks up an achievement by ID.
func Achievement(defs *Defs, id string) (types.AchievementDef, bool) {
	for _, a := range defs.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return types.AchievementDef{}, false
}

// Available reports whether the pet may own the accessory at its current
// level and species.
func Available(p *types.Profile, a types.AccessoryDef) bool {
	if p.Level < a.MinLevel {
		return false
	}
	if len(a.Species) == 0 {
		return true
	}
	for _, sp := range a.Species {
		if sp == p.Species {
			return true
		}
	}
	return false
}

// SyncAccessories grants every catalog accessory the pet qualifies for and
// returns the newly granted IDs. Owned accessories are never taken away.
func SyncAccessories(p *types.Profile, defs *Defs) []string {
	var granted []string
	for _, a := range defs.Accessories {
		if Available(p, a) && !Owns(p, a.ID) {
			p.Owned = append(p.Owned, a.ID)
			granted = append(granted, a.ID)
		}
	}
	return granted
}

// Stage returns the highest evolution stage the pet has reached.
func Stage(defs *Defs, p *types.Profile) types.StageDef {
	sd, ok := defs.Species[p.Species]
	if !ok || len(sd.Stages) == 0 {
		return types.StageDef{Name: string(p.Species), MinLevel: 1}
	}
	stage := sd.Stages[0]
	for _, st := range sd.Stages {
		if p.Level >= st.MinLevel && st.MinLevel >= stage.MinLevel {
			stage = st
		}
	}
	return stage
}

// SpeciesProp returns a species template word (treat, sound, magic, ...).
func SpeciesProp(defs *Defs, sp types.Species, prop string) string {
	if sd, ok := defs.Species[sp]; ok {
		if v, ok := sd.Props[prop]; ok {
			return v
		}
	}
	return ""
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
