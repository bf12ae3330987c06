// Package glob expands path patterns against a file system.
//
// Supported syntax: "*" matches any run of characters within one segment,
// "?" matches exactly one character, "**" spans zero or more directories,
// ".." steps to the parent and "." is the current directory. Both "/" and
// "\" separate segments. Patterns starting with "/" (Unix) or a drive such
// as "C:" (Windows) are absolute; everything else is resolved against the
// environment's working directory.
//
// A pattern ending in "*" or a mixed segment yields directories and files.
// A pattern ending in "**" yields directories only. A pattern ending in a
// literal name yields the directory or file of that name.
//
//	g, err := glob.New(fsys.OS{}, env)
//	paths, err := g.Match("src/**/*.go", nil)
package glob

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpl-au/globfs/internal/fsys"
	"github.com/jpl-au/globfs/internal/path"
)

// Predicate decides whether the walk may enter a directory. It is consulted
// for every directory the walk would descend into or return, including one
// named literally in the pattern.
type Predicate func(fsys.Directory) bool

// Option configures a Globber.
type Option func(*options)

type options struct {
	caseSensitive  *bool
	unix           *bool
	failOnIOErrors bool
	logger         *slog.Logger
}

// WithCaseSensitive overrides the platform's case sensitivity.
func WithCaseSensitive(v bool) Option {
	return func(o *options) { o.caseSensitive = &v }
}

// WithUnix overrides the environment's choice of Unix or Windows pattern
// rules. Case sensitivity follows the rules chosen unless set explicitly.
func WithUnix(v bool) Option {
	return func(o *options) { o.unix = &v }
}

// WithFailOnIOErrors makes a directory that cannot be listed abort the
// match with an error. By default such directories are skipped.
func WithFailOnIOErrors() Option {
	return func(o *options) { o.failOnIOErrors = true }
}

// WithLogger sets the logger used for skipped directories and match
// summaries at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Globber expands patterns against a file system. It holds no state between
// calls and is safe for concurrent use if the file system is.
type Globber struct {
	fs             fsys.FileSystem
	env            fsys.Environment
	comparer       path.Comparer
	unix           bool
	failOnIOErrors bool
	logger         *slog.Logger
}

// New returns a Globber over fs. Relative patterns resolve against
// env.WorkingDirectory.
func New(fs fsys.FileSystem, env fsys.Environment, opts ...Option) (*Globber, error) {
	if fs == nil {
		return nil, fmt.Errorf("%w: file system is required", ErrInvalidArgument)
	}
	if env == nil {
		return nil, fmt.Errorf("%w: environment is required", ErrInvalidArgument)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	unix := env.IsUnix()
	if o.unix != nil {
		unix = *o.unix
	}
	caseSensitive := unix
	if o.caseSensitive != nil {
		caseSensitive = *o.caseSensitive
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Globber{
		fs:             fs,
		env:            env,
		comparer:       path.NewComparer(caseSensitive),
		unix:           unix,
		failOnIOErrors: o.failOnIOErrors,
		logger:         logger,
	}, nil
}

// CaseSensitive reports whether names are compared case-sensitively.
func (g *Globber) CaseSensitive() bool { return g.comparer.CaseSensitive() }

// Unix reports whether Unix pattern rules apply.
func (g *Globber) Unix() bool { return g.unix }

// Match returns the absolute paths of every entry matching pattern, in walk
// order with duplicates removed. predicate may be nil.
func (g *Globber) Match(pattern string, predicate Predicate) ([]path.Path, error) {
	entries, err := g.MatchEntries(pattern, predicate)
	if err != nil {
		return nil, err
	}
	out := make([]path.Path, len(entries))
	for i, e := range entries {
		out[i] = e.Path()
	}
	return out, nil
}

// MatchEntries is Match returning the file system entries, so callers can
// tell files from directories without another lookup.
func (g *Globber) MatchEntries(pattern string, predicate Predicate) ([]fsys.Entry, error) {
	if strings.TrimSpace(pattern) == "" {
		return []fsys.Entry{}, nil
	}
	head, err := Parse(pattern, g.unix)
	if err != nil {
		return nil, err
	}

	c := &visitContext{
		fs:             g.fs,
		env:            g.env,
		predicate:      predicate,
		ignoreCase:     !g.comparer.CaseSensitive(),
		failOnIOErrors: g.failOnIOErrors,
		logger:         g.logger,
	}
	walk(head, c)
	if c.err != nil {
		return nil, c.err
	}

	seen := path.NewSet(g.comparer)
	out := make([]fsys.Entry, 0, len(c.results))
	for _, e := range c.results {
		if seen.Add(e.Path()) {
			out = append(out, e)
		}
	}
	g.logger.Debug("glob", "pattern", head.String(), "visited", len(c.results), "matches", len(out))
	return out, nil
}
