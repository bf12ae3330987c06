/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but are not initialised until the first
// command runs. The two phases let extensions declare commands before the
// config has been read. The service is created once and shared across all
// extensions via the Context.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/globfs/extension"
	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/log"
	"github.com/jpl-au/globfs/internal/service"
)

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *service.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads config, creates the service and injects it into
// extensions. sync.Once guarantees a single service per process.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		if wd, err := os.Getwd(); err == nil {
			log.SetProject(wd)
		}

		logger := newLogger()
		extService = service.New(cfg, logger)
		if v := DB(); v != "" {
			abs, err := filepath.Abs(v)
			if err != nil {
				initErr = fmt.Errorf("resolve --db: %w", err)
				return
			}
			extService.SetDB(abs)
		}
		extContext = extension.NewContext(extService, cfg, logger)

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
	})
}
