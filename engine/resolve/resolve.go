// Package resolve maps user-supplied names for species, colours and
// accessories onto catalog entries.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// NotFoundError indicates no catalog entry matched a name.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// LockedError indicates an accessory exists but the pet does not own it.
type LockedError struct {
	Accessory types.AccessoryDef
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s unlocks at level %d", e.Accessory.Name, e.Accessory.MinLevel)
}

// Species maps a species name onto a catalog species.
func Species(defs *state.Defs, name string) (types.Species, error) {
	sp := types.Species(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := defs.Species[sp]; !ok {
		return "", &NotFoundError{Kind: "species", Name: name}
	}
	return sp, nil
}

// Color returns name if it is a colour variant of sp, otherwise the
// species default.
func Color(defs *state.Defs, sp types.Species, name string) string {
	sd, ok := defs.Species[sp]
	if !ok {
		return strings.ToLower(strings.TrimSpace(name))
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, c := range sd.Colors {
		if c == want {
			return c
		}
	}
	if sd.DefaultColor != "" {
		return sd.DefaultColor
	}
	if len(sd.Colors) > 0 {
		return sd.Colors[0]
	}
	return want
}

// ValidColor reports whether name is a colour variant of sp.
func ValidColor(defs *state.Defs, sp types.Species, name string) bool {
	sd, ok := defs.Species[sp]
	if !ok {
		return false
	}
	for _, c := range sd.Colors {
		if c == name {
			return true
		}
	}
	return false
}

// Accessory resolves an accessory by ID or display name and checks the pet
// owns it.
func Accessory(defs *state.Defs, p *types.Profile, name string) (types.AccessoryDef, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, a := range defs.Accessories {
		if a.ID != want && strings.ToLower(a.Name) != want {
			continue
		}
		if !state.Owns(p, a.ID) {
			return a, &LockedError{Accessory: a}
		}
		return a, nil
	}
	return types.AccessoryDef{}, &NotFoundError{Kind: "accessory", Name: name}
}
