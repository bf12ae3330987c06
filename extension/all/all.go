// Package all imports all built-in globfs extensions.
// Import this package to register all built-in commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/globfs/extension/core"
	_ "github.com/jpl-au/globfs/extension/search"
	_ "github.com/jpl-au/globfs/extension/snapshot"
)
