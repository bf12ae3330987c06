// flags.go defines constants for CLI flag names shared between commands.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "fail-on-io-errors" -> FlagFailOnIOErrors).

package extension

const (
	// Boolean flags

	FlagCaseSensitive  = "case-sensitive"    // Compare names case-sensitively
	FlagDryRun         = "dry-run"           // Preview without changes
	FlagFailOnIOErrors = "fail-on-io-errors" // Abort on unreadable directories
	FlagIgnoreCase     = "ignore-case"       // Compare names case-insensitively
	FlagLocal          = "local"             // Use local config scope
	FlagLong           = "long"              // Long format output
	FlagRelative       = "relative"          // Print paths relative to the root
	FlagShort          = "short"             // Minimal output
	FlagTree           = "tree"              // Tree view output

	// String flags

	FlagFrom      = "from"       // Older snapshot
	FlagOlderThan = "older-than" // Retention period, e.g. 30d
	FlagPlatform  = "platform"   // Pattern rules: unix, windows or auto
	FlagRoot      = "root"       // Working directory for relative patterns
	FlagSnapshot  = "snapshot"   // Snapshot ID or prefix
	FlagTo        = "to"         // Newer snapshot

	// Int flags

	FlagKeep = "keep" // Newest snapshots to keep

	// Slice flags

	FlagExclude = "exclude" // Directory names to prune

	// Duration flags

	FlagDebounce = "debounce" // Quiet period before re-matching
)
