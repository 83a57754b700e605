package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Species "dog" { colors = {...}, default_color = "...", props = {...}, stages = {...} }
	L.SetGlobal("Species", curried(L, func(id string, tbl *lua.LTable) {
		coll.species = append(coll.species, rawSpecies{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Accessory "id" { name = "...", category = "...", min_level = 1, species = {...} }
	L.SetGlobal("Accessory", curried(L, func(id string, tbl *lua.LTable) {
		coll.accessories = append(coll.accessories, rawAccessory{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Achievement "id" { name = "...", description = "...", rarity = "...", xp = 50 }
	L.SetGlobal("Achievement", curried(L, func(id string, tbl *lua.LTable) {
		coll.achievements = append(coll.achievements, rawAchievement{id: id, table: tbl, order: coll.nextSourceOrder()})
	}))

	// Joke "template" takes a plain string, not a table.
	L.SetGlobal("Joke", L.NewFunction(func(L *lua.LState) int {
		coll.jokes = append(coll.jokes, L.CheckString(1))
		return 0
	}))
}

// curried builds a constructor of the form Name "id" { ... }: the outer call
// takes the id and returns a function that takes the table.
func curried(L *lua.LState, add func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}
