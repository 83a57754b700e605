package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/petcore/engine/events"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Species the engine knows how to talk about.
var validSpecies = map[types.Species]bool{
	types.SpeciesDog:  true,
	types.SpeciesCat:  true,
	types.SpeciesBird: true,
}

// Props the built-in reply table interpolates for every species.
var requiredProps = []string{"treat", "treat_short", "sound"}

var validRarities = map[string]bool{
	"common":    true,
	"uncommon":  true,
	"rare":      true,
	"epic":      true,
	"legendary": true,
}

// validate checks the compiled defs for referential integrity and
// consistency. The result is never nil; callers check Errors.
func validate(defs *state.Defs) *ValidationError {
	ve := &ValidationError{}

	if len(defs.Species) == 0 {
		ve.Errors = append(ve.Errors, "no Species defined")
	}
	if _, ok := defs.Species[state.DefaultSpecies]; !ok && len(defs.Species) > 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"default species %q is not defined", state.DefaultSpecies))
	}

	for _, id := range sortedSpecies(defs) {
		validateSpecies(defs.Species[id], ve)
	}

	for _, a := range defs.Accessories {
		if a.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("accessory %q has no name", a.ID))
		}
		if a.MinLevel < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"accessory %q min_level %d must be at least 1", a.ID, a.MinLevel))
		}
		for _, sp := range a.Species {
			if _, ok := defs.Species[sp]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"accessory %q references undefined species %q", a.ID, sp))
			}
		}
	}

	catalog := map[string]bool{}
	for _, a := range defs.Achievements {
		catalog[a.ID] = true
		if a.Rarity != "" && !validRarities[a.Rarity] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"achievement %q has unknown rarity %q", a.ID, a.Rarity))
		}
		if a.XPReward < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"achievement %q xp must not be negative", a.ID))
		}
	}
	// Predicates can still unlock achievements missing from the catalog, but
	// the catalog view will not list them.
	for _, p := range events.Achievements {
		if !catalog[p.ID] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"achievement %q is unlockable but not in the catalog", p.ID))
		}
	}

	if len(defs.Jokes) == 0 {
		ve.Warnings = append(ve.Warnings, "no Joke defined; the joke rule will use its built-in line")
	}
	for _, j := range defs.Jokes {
		for _, prop := range templateProps(j) {
			for _, id := range sortedSpecies(defs) {
				if _, ok := defs.Species[id].Props[prop]; !ok {
					ve.Warnings = append(ve.Warnings, fmt.Sprintf(
						"joke %q uses {species.%s} which species %q does not define", j, prop, id))
				}
			}
		}
	}

	return ve
}

func validateSpecies(sp types.SpeciesDef, ve *ValidationError) {
	if !validSpecies[sp.ID] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("unknown species %q", sp.ID))
	}
	if len(sp.Colors) == 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("species %q has no colors", sp.ID))
	}
	if !containsString(sp.Colors, sp.DefaultColor) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"species %q default_color %q is not one of its colors", sp.ID, sp.DefaultColor))
	}
	for _, prop := range requiredProps {
		if sp.Props[prop] == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"species %q is missing prop %q", sp.ID, prop))
		}
	}

	if len(sp.Stages) == 0 {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"species %q has no stages; the species name is shown instead", sp.ID))
		return
	}
	if sp.Stages[0].MinLevel != 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"species %q first stage starts at level %d, want 1", sp.ID, sp.Stages[0].MinLevel))
	}
	for i, st := range sp.Stages {
		if st.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("species %q stage %d has no name", sp.ID, i+1))
		}
		if i > 0 && st.MinLevel == sp.Stages[i-1].MinLevel {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"species %q has two stages at level %d", sp.ID, st.MinLevel))
		}
	}
}

// templateProps returns the prop names referenced as {species.<prop>}.
func templateProps(s string) []string {
	var props []string
	for {
		start := strings.Index(s, "{species.")
		if start < 0 {
			return props
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			return props
		}
		props = append(props, s[start+len("{species."):start+end])
		s = s[start+end+1:]
	}
}

func sortedSpecies(defs *state.Defs) []types.Species {
	ids := make([]types.Species, 0, len(defs.Species))
	for id := range defs.Species {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
