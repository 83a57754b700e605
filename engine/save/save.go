// Package save persists the session as one string record per key.
// Loading is field-by-field: a missing or malformed record leaves the
// in-memory default in place.
package save

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nathoo/petcore/engine/resolve"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/store"
	"github.com/nathoo/petcore/types"
)

// Persisted keys.
const (
	KeyName            = "name"
	KeySpecies         = "species"
	KeyColor           = "colorVariant"
	KeyLevel           = "level"
	KeyExperience      = "experience"
	KeyStats           = "vitalStats"
	KeyAchievements    = "achievements"
	KeyOwned           = "ownedAccessories"
	KeyEquipped        = "equippedAccessory"
	KeyPersonality     = "personality"
	KeyLastInteraction = "lastInteractionAt"
	KeyLog             = "conversationLog"
	KeyEmotion         = "emotion"
)

// Keys lists every persisted key in write order.
var Keys = []string{
	KeyName, KeySpecies, KeyColor, KeyLevel, KeyExperience, KeyStats,
	KeyAchievements, KeyOwned, KeyEquipped, KeyPersonality,
	KeyLastInteraction, KeyLog, KeyEmotion,
}

// Encode renders the session as key/value records.
func Encode(s *types.State) (map[string]string, error) {
	p := &s.Pet
	rec := map[string]string{
		KeyName:       p.Name,
		KeySpecies:    string(p.Species),
		KeyColor:      p.Color,
		KeyLevel:      strconv.Itoa(p.Level),
		KeyExperience: strconv.Itoa(p.Experience),
		KeyEquipped:   p.Equipped,
		KeyEmotion:    string(p.Emotion),
	}
	if !p.LastInteraction.IsZero() {
		rec[KeyLastInteraction] = strconv.FormatInt(p.LastInteraction.UnixMilli(), 10)
	}

	jsonFields := []struct {
		key string
		v   any
	}{
		{KeyStats, p.Stats},
		{KeyAchievements, nonNil(p.Achievements)},
		{KeyOwned, nonNil(p.Owned)},
		{KeyPersonality, p.Personality},
		{KeyLog, nonNilLog(s.Log)},
	}
	for _, f := range jsonFields {
		b, err := json.Marshal(f.v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.key, err)
		}
		rec[f.key] = string(b)
	}
	return rec, nil
}

// Save writes every record to st, flushing buffered stores.
func Save(ctx context.Context, st store.Store, s *types.State) error {
	rec, err := Encode(s)
	if err != nil {
		return err
	}
	for _, k := range Keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		if err := st.Set(ctx, k, v); err != nil {
			return fmt.Errorf("writing %s: %w", k, err)
		}
	}
	return nil
}

// Report describes what Load found.
type Report struct {
	Found    bool     // at least one record existed
	LogFound bool     // a conversation log was stored and decoded
	Ignored  []string // keys present but malformed or invalid
	Unknown  []string // keys kept as stored but outside the known values
}

// Load reads every record from st onto s. Returns an error only when the
// store itself fails.
func Load(ctx context.Context, st store.Store, s *types.State, defs *state.Defs) (Report, error) {
	rec := map[string]string{}
	for _, k := range Keys {
		v, ok, err := st.Get(ctx, k)
		if err != nil {
			return Report{}, fmt.Errorf("reading %s: %w", k, err)
		}
		if ok {
			rec[k] = v
		}
	}
	return Apply(rec, s, defs), nil
}

// Apply decodes rec onto s field by field.
func Apply(rec map[string]string, s *types.State, defs *state.Defs) Report {
	var rep Report
	rep.Found = len(rec) > 0
	p := &s.Pet

	field := func(key string, decode func(v string) bool) {
		v, ok := rec[key]
		if !ok {
			return
		}
		if !decode(v) {
			rep.Ignored = append(rep.Ignored, key)
		}
	}

	field(KeyName, func(v string) bool {
		if v == "" {
			return false
		}
		p.Name = v
		return true
	})
	field(KeySpecies, func(v string) bool {
		sp := types.Species(v)
		if _, ok := defs.Species[sp]; !ok {
			return false
		}
		p.Species = sp
		return true
	})
	field(KeyColor, func(v string) bool {
		if v == "" {
			return false
		}
		if sd, ok := defs.Species[p.Species]; ok && len(sd.Colors) > 0 && !resolve.ValidColor(defs, p.Species, v) {
			return false
		}
		p.Color = v
		return true
	})
	field(KeyLevel, func(v string) bool {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return false
		}
		p.Level = n
		return true
	})
	field(KeyExperience, func(v string) bool {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return false
		}
		p.Experience = n
		return true
	})
	field(KeyStats, func(v string) bool {
		st := p.Stats
		if err := json.Unmarshal([]byte(v), &st); err != nil {
			return false
		}
		p.Stats = state.ClampStats(st)
		return true
	})
	field(KeyPersonality, func(v string) bool {
		tr := p.Personality
		if err := json.Unmarshal([]byte(v), &tr); err != nil {
			return false
		}
		p.Personality = state.ClampPersonality(tr)
		return true
	})
	field(KeyAchievements, func(v string) bool {
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err != nil {
			return false
		}
		p.Achievements = dedupe(ids)
		return true
	})
	field(KeyOwned, func(v string) bool {
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err != nil {
			return false
		}
		p.Owned = dedupe(ids)
		return true
	})
	field(KeyEquipped, func(v string) bool {
		p.Equipped = v
		return true
	})
	field(KeyEmotion, func(v string) bool {
		if v == "" {
			return false
		}
		p.Emotion = types.Emotion(v)
		if !state.KnownEmotion(p.Emotion) {
			rep.Unknown = append(rep.Unknown, KeyEmotion)
		}
		return true
	})
	field(KeyLastInteraction, func(v string) bool {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil || ms <= 0 {
			return false
		}
		p.LastInteraction = time.UnixMilli(ms)
		return true
	})
	field(KeyLog, func(v string) bool {
		var log []types.Message
		if err := json.Unmarshal([]byte(v), &log); err != nil {
			return false
		}
		s.Log = nonNilLog(log)
		rep.LogFound = true
		return true
	})

	// The colour must belong to the (possibly loaded) species.
	if sd, ok := defs.Species[p.Species]; ok && len(sd.Colors) > 0 && !resolve.ValidColor(defs, p.Species, p.Color) {
		p.Color = sd.DefaultColor
	}
	// An equipped accessory must be owned.
	if p.Equipped != "" && !state.Owns(p, p.Equipped) {
		p.Equipped = ""
	}
	return rep
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nonNilLog(log []types.Message) []types.Message {
	if log == nil {
		return []types.Message{}
	}
	return log
}
