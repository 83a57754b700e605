// Package loader loads Lua content catalogs into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua afterwards.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawSpecies holds a species table before compilation.
type rawSpecies struct {
	id    string
	table *lua.LTable
	order int
}

// rawAccessory holds an accessory table before compilation.
type rawAccessory struct {
	id    string
	table *lua.LTable
	order int
}

// rawAchievement holds an achievement table before compilation.
type rawAchievement struct {
	id    string
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an integer field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStrings converts the array part of a Lua table to strings,
// skipping non-string entries.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Species: map[types.Species]types.SpeciesDef{},
		Jokes:   coll.jokes,
	}

	for _, raw := range coll.species {
		id := types.Species(raw.id)
		if _, dup := defs.Species[id]; dup {
			return nil, fmt.Errorf("species %q defined more than once", raw.id)
		}
		sp, err := compileSpecies(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling species %s: %w", raw.id, err)
		}
		defs.Species[id] = sp
	}

	seen := map[string]bool{}
	for _, raw := range coll.accessories {
		if seen[raw.id] {
			return nil, fmt.Errorf("accessory %q defined more than once", raw.id)
		}
		seen[raw.id] = true
		defs.Accessories = append(defs.Accessories, compileAccessory(raw))
	}

	seen = map[string]bool{}
	for _, raw := range coll.achievements {
		if seen[raw.id] {
			return nil, fmt.Errorf("achievement %q defined more than once", raw.id)
		}
		seen[raw.id] = true
		defs.Achievements = append(defs.Achievements, compileAchievement(raw))
	}

	return defs, nil
}

func compileSpecies(raw rawSpecies) (types.SpeciesDef, error) {
	tbl := raw.table
	sp := types.SpeciesDef{
		ID:           types.Species(raw.id),
		Colors:       tableToStrings(getTable(tbl, "colors")),
		DefaultColor: getString(tbl, "default_color"),
		Props:        tableToStringMap(getTable(tbl, "props")),
	}
	if sp.Props == nil {
		sp.Props = map[string]string{}
	}

	stages := getTable(tbl, "stages")
	if stages == nil {
		return sp, nil
	}
	for i := 1; i <= stages.MaxN(); i++ {
		st, ok := stages.RawGetInt(i).(*lua.LTable)
		if !ok {
			return sp, fmt.Errorf("stage %d is not a table", i)
		}
		sp.Stages = append(sp.Stages, types.StageDef{
			Name:      getString(st, "name"),
			MinLevel:  getInt(st, "min_level", 1),
			Abilities: tableToStrings(getTable(st, "abilities")),
		})
	}
	sort.SliceStable(sp.Stages, func(i, j int) bool {
		return sp.Stages[i].MinLevel < sp.Stages[j].MinLevel
	})
	return sp, nil
}

func compileAccessory(raw rawAccessory) types.AccessoryDef {
	tbl := raw.table
	a := types.AccessoryDef{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Category: getString(tbl, "category"),
		MinLevel: getInt(tbl, "min_level", 1),
	}
	for _, s := range tableToStrings(getTable(tbl, "species")) {
		a.Species = append(a.Species, types.Species(s))
	}
	return a
}

func compileAchievement(raw rawAchievement) types.AchievementDef {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = raw.id
	}
	return types.AchievementDef{
		ID:          raw.id,
		Name:        name,
		Description: getString(tbl, "description"),
		Rarity:      getString(tbl, "rarity"),
		XPReward:    getInt(tbl, "xp", 0),
		SourceOrder: raw.order,
	}
}

// sortedLuaFiles returns species.lua first, then the rest alphabetically.
func sortedLuaFiles(files []string) []string {
	var speciesFile string
	var others []string
	for _, f := range files {
		if f == "species.lua" {
			speciesFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if speciesFile != "" {
		return append([]string{speciesFile}, others...)
	}
	return others
}
