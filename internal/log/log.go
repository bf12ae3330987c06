// Package log provides audit logging for globfs operations.
// Logs are stored in ~/.globfs/log/globfs-log.db and record every CLI command
// and MCP tool invocation across projects.
//
// # Fluent API
//
//	log.Event("search:match", "match").
//		Pattern(pattern).
//		Root(root).
//		Count(len(paths)).
//		Write(err)
//
//	log.Event("snapshot:create", "index").
//		Root(dir).
//		Snapshot(snap.ID).
//		Detail("files", snap.Files).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g. "search:match", "mcp:globfs_match"
	Action   string // verb: match, watch, index, delete, ...
	Pattern  string // glob pattern, if any
	Root     string // directory relative patterns resolved against
	Snapshot string // snapshot ID the operation used or produced
	Count    int    // number of results

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry. Create with [Event], chain setters, then
// call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Pattern sets the glob pattern the operation evaluated.
func (b *Builder) Pattern(p string) *Builder {
	b.entry.Pattern = p
	return b
}

// Root sets the directory the operation worked in.
func (b *Builder) Root(root string) *Builder {
	b.entry.Root = root
	return b
}

// Snapshot sets the snapshot the operation read or created.
func (b *Builder) Snapshot(id string) *Builder {
	b.entry.Snapshot = id
	return b
}

// Count sets the number of results produced.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success or failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// dir should be the absolute working directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
