package fsys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/globfs/internal/path"
)

type environment struct {
	wd   path.DirectoryPath
	unix bool
}

// NewEnvironment returns an Environment rooted at wd. wd must be absolute.
func NewEnvironment(wd string, unix bool) Environment {
	return &environment{wd: path.NewDirectory(wd), unix: unix}
}

// OSEnvironment returns an Environment for the process working directory
// using the platform's path rules.
func OSEnvironment() (Environment, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	return NewEnvironment(filepath.ToSlash(wd), path.DefaultUnix), nil
}

// WorkingDirectory returns the directory relative patterns start from.
func (e *environment) WorkingDirectory() path.DirectoryPath { return e.wd }

// IsUnix reports whether Unix pattern rules apply.
func (e *environment) IsUnix() bool { return e.unix }
