// Package service ties configuration, the globber and the snapshot store
// together. The CLI and the MCP server both match through a Service so they
// resolve roots, platforms and exclusions the same way.
//
// Example:
//
//	svc := service.New(cfg, nil)
//	defer svc.Close()
//	res, err := svc.Match(ctx, service.Request{Patterns: []string{"**/*.go"}})
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/diff"
	"github.com/jpl-au/globfs/internal/fsys"
	"github.com/jpl-au/globfs/internal/glob"
	"github.com/jpl-au/globfs/internal/path"
	"github.com/jpl-au/globfs/internal/store"
	"github.com/jpl-au/globfs/internal/validate"
)

// ErrRootWithSnapshot is returned when a request names both a root on disk
// and a snapshot. A snapshot always resolves against its own root.
var ErrRootWithSnapshot = errors.New("root and snapshot are mutually exclusive")

// Request describes one match.
type Request struct {
	Patterns       []string
	Root           string   // working directory; "" uses GLOBFS_ROOT, then the process directory
	Snapshot       string   // snapshot ID or unique prefix; "" matches the live tree
	Exclude        []string // directory names pruned on top of glob.exclude
	CaseSensitive  *bool    // nil defers to config, then to the platform
	Platform       string   // unix, windows, auto or ""
	FailOnIOErrors bool
}

// Result is the outcome of a match.
type Result struct {
	Entries       []fsys.Entry
	Root          string          // directory relative patterns resolved against
	Snapshot      *store.Snapshot // nil for the live tree
	CaseSensitive bool
	Unix          bool
}

// Paths returns the matched paths as strings.
func (r *Result) Paths() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Path().String()
	}
	return out
}

// Relative returns the matched paths relative to Root where possible.
func (r *Result) Relative() []string {
	base := path.New(r.Root)
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		p := e.Path()
		if rel, ok := p.RelativeTo(base); ok {
			p = rel
		}
		out[i] = p.String()
	}
	return out
}

// Label names where the result came from, for diff headers.
func (r *Result) Label() string {
	if r.Snapshot != nil {
		return "snapshot " + r.Snapshot.ShortID()
	}
	return "live " + r.Root
}

// EntryJSON is the API representation of one matched entry.
type EntryJSON struct {
	Path string `json:"path"`
	Type string `json:"type"` // "dir" or "file"
	Size *int64 `json:"size,omitempty"`
}

// ResultJSON is the API representation of a Result.
type ResultJSON struct {
	Root          string      `json:"root"`
	Snapshot      string      `json:"snapshot,omitempty"`
	Platform      string      `json:"platform"`
	CaseSensitive bool        `json:"case_sensitive"`
	Count         int         `json:"count"`
	Matches       []EntryJSON `json:"matches"`
}

// ToJSON converts the result to its API representation. With relative set,
// paths under Root are reported relative to it.
func (r *Result) ToJSON(relative bool) ResultJSON {
	paths := r.Paths()
	if relative {
		paths = r.Relative()
	}
	out := ResultJSON{
		Root:          r.Root,
		Platform:      "windows",
		CaseSensitive: r.CaseSensitive,
		Count:         len(r.Entries),
		Matches:       make([]EntryJSON, len(r.Entries)),
	}
	if r.Unix {
		out.Platform = "unix"
	}
	if r.Snapshot != nil {
		out.Snapshot = r.Snapshot.ID
	}
	for i, e := range r.Entries {
		ej := EntryJSON{Path: paths[i], Type: "dir"}
		if f, ok := e.(fsys.File); ok && !e.IsDir() {
			size := f.Length()
			ej.Type, ej.Size = "file", &size
		}
		out.Matches[i] = ej
	}
	return out
}

// Service matches patterns using the settings in a Config.
// Safe for concurrent use.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger

	mu    sync.Mutex
	db    string // overrides cfg.SnapshotDB when set
	store *store.SQLiteStore
}

// New returns a Service. A nil logger discards diagnostics.
func New(cfg *config.Config, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{cfg: cfg, logger: logger}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config { return s.cfg }

// SetDB selects the snapshot database file, overriding the configuration
// and GLOBFS_DB. It has no effect once the store is open.
func (s *Service) SetDB(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db = path
}

// Store opens the snapshot database on first use, creating it and its
// schema when missing.
func (s *Service) Store() (*store.SQLiteStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		return s.store, nil
	}

	db := s.db
	if db == "" {
		db = s.cfg.SnapshotDB()
	}
	if err := os.MkdirAll(filepath.Dir(db), 0755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	st, err := store.Open(db)
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		st.Close()
		return nil, err
	}
	s.store = st
	return st, nil
}

// Close releases the snapshot database if it was opened.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// ParsePlatform converts a platform name to the unix flag the globber
// takes. "" and "auto" return nil.
func ParsePlatform(name string) (*bool, error) {
	var unix bool
	switch name {
	case "", config.Auto:
		return nil, nil
	case "unix":
		unix = true
	case "windows":
		unix = false
	default:
		return nil, fmt.Errorf("%w: platform must be unix, windows or auto, got %q", glob.ErrInvalidArgument, name)
	}
	return &unix, nil
}

// Globber builds a Globber over fs and env with the request's overrides
// applied on top of the configuration.
func (s *Service) Globber(fs fsys.FileSystem, env fsys.Environment, req Request) (*glob.Globber, error) {
	unix, err := ParsePlatform(req.Platform)
	if err != nil {
		return nil, err
	}
	if unix == nil {
		unix = s.cfg.Unix()
	}
	cs := req.CaseSensitive
	if cs == nil {
		cs = s.cfg.CaseSensitive()
	}

	opts := []glob.Option{glob.WithLogger(s.logger)}
	if unix != nil {
		opts = append(opts, glob.WithUnix(*unix))
	}
	if cs != nil {
		opts = append(opts, glob.WithCaseSensitive(*cs))
	}
	if req.FailOnIOErrors || s.cfg.FailOnIOErrors() {
		opts = append(opts, glob.WithFailOnIOErrors())
	}
	return glob.New(fs, env, opts...)
}

// Match expands every pattern in req and returns the union in pattern
// order, without duplicates.
func (s *Service) Match(ctx context.Context, req Request) (*Result, error) {
	for _, p := range req.Patterns {
		if err := validate.Pattern(p, s.cfg.MaxPattern()); err != nil {
			return nil, err
		}
	}
	for _, n := range req.Exclude {
		if err := validate.Name(n); err != nil {
			return nil, err
		}
	}

	res := &Result{}
	var (
		fs  fsys.FileSystem
		env fsys.Environment
	)
	if req.Snapshot != "" {
		if req.Root != "" {
			return nil, ErrRootWithSnapshot
		}
		st, err := s.Store()
		if err != nil {
			return nil, err
		}
		sfs, err := st.FileSystem(ctx, req.Snapshot)
		if err != nil {
			return nil, err
		}
		if len(sfs.Skipped) > 0 {
			s.logger.Warn("snapshot entries differ only in case; keeping the first",
				"snapshot", sfs.Snapshot.ShortID(), "skipped", len(sfs.Skipped), "first", sfs.Skipped[0])
		}
		fs, env = sfs, sfs.Environment()
		res.Snapshot = &sfs.Snapshot
	} else {
		var err error
		env, err = liveEnvironment(req.Root)
		if err != nil {
			return nil, err
		}
		fs = fsys.OS{}
	}
	res.Root = env.WorkingDirectory().String()

	g, err := s.Globber(fs, env, req)
	if err != nil {
		return nil, err
	}
	res.CaseSensitive, res.Unix = g.CaseSensitive(), g.Unix()

	exclude := append(append([]string{}, s.cfg.Exclude()...), req.Exclude...)
	pred, err := glob.ExcludeNames(!res.CaseSensitive, exclude...)
	if err != nil {
		return nil, err
	}

	seen := path.NewSet(path.NewComparer(res.CaseSensitive))
	res.Entries = []fsys.Entry{}
	for _, p := range req.Patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := g.MatchEntries(p, pred)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if seen.Add(e.Path()) {
				res.Entries = append(res.Entries, e)
			}
		}
	}
	return res, nil
}

// liveEnvironment resolves the working directory for the disk tree.
func liveEnvironment(root string) (fsys.Environment, error) {
	if root == "" {
		root = os.Getenv(config.EnvRoot)
	}
	if root == "" {
		return fsys.OSEnvironment()
	}
	abs, err := validate.Root(root)
	if err != nil {
		return nil, err
	}
	return fsys.NewEnvironment(filepath.ToSlash(abs), path.DefaultUnix), nil
}

// Diff matches req against snapshot from and against snapshot to, or the
// live tree at the snapshot's root when to is empty. Paths are compared
// relative to each side's root.
func (s *Service) Diff(ctx context.Context, req Request, from, to string) (diff.Result, error) {
	if strings.TrimSpace(from) == "" {
		return diff.Result{}, fmt.Errorf("%w: from snapshot is required", glob.ErrInvalidArgument)
	}
	req.Root = ""
	req.Snapshot = from
	old, err := s.Match(ctx, req)
	if err != nil {
		return diff.Result{}, err
	}

	req.Snapshot = to
	if to == "" {
		req.Root = old.Snapshot.Root
	}
	cur, err := s.Match(ctx, req)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(old.Relative(), cur.Relative(), old.Label(), cur.Label()), nil
}

// Index records root as a new snapshot, pruning the configured exclusions.
func (s *Service) Index(ctx context.Context, root string, showProgress bool) (*store.Snapshot, error) {
	st, err := s.Store()
	if err != nil {
		return nil, err
	}

	unix := path.DefaultUnix
	if u := s.cfg.Unix(); u != nil {
		unix = *u
	}
	caseSensitive := unix
	if cs := s.cfg.CaseSensitive(); cs != nil {
		caseSensitive = *cs
	}
	skip, err := glob.NameMatcher(!caseSensitive, s.cfg.Exclude()...)
	if err != nil {
		return nil, err
	}

	return st.Index(ctx, root, store.IndexOptions{
		Skip:     skip,
		Unix:     unix,
		Progress: showProgress,
	})
}
