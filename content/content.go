// Package content embeds the default Lua content pack.
package content

import (
	"embed"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/loader"
)

//go:embed *.lua
var FS embed.FS

// Default loads the embedded pack.
func Default(opts ...loader.Option) (*state.Defs, error) {
	return loader.LoadFS(FS, opts...)
}
