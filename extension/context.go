// context.go defines the Context extensions receive during Init.
//
// Context is an interface so tests can hand extensions a context built over
// a temporary database and config.

package extension

import (
	"log/slog"

	"github.com/jpl-au/globfs/internal/config"
	"github.com/jpl-au/globfs/internal/service"
)

// Context provides extensions controlled access to globfs internals.
type Context interface {
	// Service returns the shared match service. The snapshot store behind
	// it is opened on first use.
	Service() *service.Service

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config

	// Logger returns the diagnostic logger (debug output under --verbose).
	Logger() *slog.Logger
}

// extContext implements Context.
type extContext struct {
	svc    *service.Service
	cfg    *config.Config
	logger *slog.Logger
}

// NewContext creates a new extension context.
func NewContext(svc *service.Service, cfg *config.Config, logger *slog.Logger) Context {
	return &extContext{svc: svc, cfg: cfg, logger: logger}
}

func (c *extContext) Service() *service.Service { return c.svc }
func (c *extContext) Config() *config.Config    { return c.cfg }
func (c *extContext) Logger() *slog.Logger      { return c.logger }
