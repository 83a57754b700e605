package effects

import (
	"testing"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

func baseline() *types.Profile {
	return &types.Profile{
		Stats:       types.Stats{Happiness: 80, Energy: 90, Hunger: 70, Intelligence: 50},
		Personality: types.Personality{Playfulness: 50, Affection: 50, Curiosity: 50, Independence: 50},
	}
}

func TestApply_KeywordDeltas(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		emotion types.Emotion
		want    types.Stats
	}{
		{
			name:    "love and play",
			text:    "i love you, let's play!",
			emotion: types.EmotionPlayful,
			want:    types.Stats{Happiness: 85, Energy: 85, Hunger: 69, Intelligence: 50},
		},
		{
			name:    "hello with excited reply",
			text:    "hello",
			emotion: types.EmotionExcited,
			want:    types.Stats{Happiness: 85, Energy: 85, Hunger: 69, Intelligence: 50},
		},
		{
			name:    "sad text",
			text:    "i feel sad",
			emotion: types.EmotionLoving,
			want:    types.Stats{Happiness: 85, Energy: 90, Hunger: 69, Intelligence: 50},
		},
		{
			name:    "sad text and sad reply",
			text:    "i feel sad",
			emotion: types.EmotionSad,
			want:    types.Stats{Happiness: 77, Energy: 90, Hunger: 69, Intelligence: 50},
		},
		{
			name:    "sleep",
			text:    "time to sleep",
			emotion: types.EmotionSleepy,
			want:    types.Stats{Happiness: 80, Energy: 100, Hunger: 69, Intelligence: 50},
		},
		{
			name:    "food",
			text:    "want a treat?",
			emotion: types.EmotionHungry,
			want:    types.Stats{Happiness: 80, Energy: 90, Hunger: 85, Intelligence: 50},
		},
		{
			name:    "learning",
			text:    "let's learn",
			emotion: types.EmotionCurious,
			want:    types.Stats{Happiness: 80, Energy: 90, Hunger: 69, Intelligence: 52},
		},
		{
			name:    "neutral decays hunger only",
			text:    "the sky is blue",
			emotion: types.EmotionShocked,
			want:    types.Stats{Happiness: 80, Energy: 90, Hunger: 69, Intelligence: 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseline()
			Apply(p, tt.text, tt.emotion)
			if p.Stats != tt.want {
				t.Errorf("stats = %+v, want %+v", p.Stats, tt.want)
			}
		})
	}
}

func TestApply_PersonalityGrowth(t *testing.T) {
	p := baseline()
	d := Apply(p, "what a fun hug, leave me alone", types.EmotionShocked)

	want := types.Personality{Playfulness: 51, Affection: 51, Curiosity: 51, Independence: 51}
	if p.Personality != want {
		t.Errorf("personality = %+v, want %+v", p.Personality, want)
	}
	if d.Personality.Playfulness != 1 {
		t.Errorf("delta playfulness = %d, want 1", d.Personality.Playfulness)
	}
}

func TestApply_Clamping(t *testing.T) {
	p := &types.Profile{
		Stats:       types.Stats{Happiness: 98, Energy: 2, Hunger: 0, Intelligence: 99},
		Personality: types.Personality{Playfulness: 100},
	}
	d := Apply(p, "play a fun game to learn", types.EmotionExcited)

	if p.Stats.Happiness != 100 || p.Stats.Energy != 0 || p.Stats.Hunger != 0 || p.Stats.Intelligence != 100 {
		t.Errorf("stats = %+v, want clamped", p.Stats)
	}
	if p.Personality.Playfulness != 100 {
		t.Errorf("playfulness = %d, want 100", p.Personality.Playfulness)
	}
	if d.Stats.Energy != -2 || d.Stats.Hunger != 0 {
		t.Errorf("delta = %+v, want effective change", d.Stats)
	}
}

func TestApply_SameSnapshot(t *testing.T) {
	// Happiness rising must not influence the energy branch in the same pass.
	p := baseline()
	p.Stats.Energy = 95
	Apply(p, "good rest", types.EmotionHappy)
	if p.Stats.Energy != 100 || p.Stats.Happiness != 85 {
		t.Errorf("stats = %+v", p.Stats)
	}
}

func TestAdjust(t *testing.T) {
	p := baseline()
	Adjust(p, types.Stats{Energy: -100, Intelligence: 70})
	if p.Stats.Energy != 0 || p.Stats.Intelligence != 100 {
		t.Errorf("stats = %+v", p.Stats)
	}
}

func TestAbsencePenalty(t *testing.T) {
	tun := state.DefaultTuning()
	tests := []struct {
		name      string
		happiness int
		days      int
		want      int
	}{
		{"two days", 80, 2, 70},
		{"capped at sixty", 100, 30, 40},
		{"floored at twenty", 30, 5, 20},
		{"already low", 15, 5, 15},
		{"no days", 80, 0, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &types.Profile{Stats: types.Stats{Happiness: tt.happiness}}
			AbsencePenalty(p, tt.days, tun)
			if p.Stats.Happiness != tt.want {
				t.Errorf("happiness = %d, want %d", p.Stats.Happiness, tt.want)
			}
		})
	}
}
