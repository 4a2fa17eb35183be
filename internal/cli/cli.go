// Package cli implements the pseudoloc command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pseudoloc/internal/config"
	"github.com/matzehuels/pseudoloc/pkg/cache"
	"github.com/matzehuels/pseudoloc/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pseudoloc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag.
	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path() != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path())
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store := c.newCache(ctx, cfg, noCache)

	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" && cfg.Cache.Backend != cache.BackendRedis {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}

	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = cfg.Cache.TTL.Duration
	return runner, nil
}

// newCache opens the configured backend. Caching only speeds things up, so
// an unavailable backend degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	opts := cfg.CacheOptions()
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		return cache.NewNullCache()
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", opts.Backend, "error", err)
		return cache.NewNullCache()
	}
	return store
}

// =============================================================================
// Command Helpers
// =============================================================================

// closeRunner releases the runner's cache, logging failures.
func (c *CLI) closeRunner(r *pipeline.Runner) {
	if err := r.Close(); err != nil {
		c.Logger.Warn("close cache", "error", err)
	}
}
