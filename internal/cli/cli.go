// Package cli implements the moodboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moodboard/pkg/arrange"
	"github.com/matzehuels/moodboard/pkg/buildinfo"
	"github.com/matzehuels/moodboard/pkg/cache"
	"github.com/matzehuels/moodboard/pkg/config"
	"github.com/matzehuels/moodboard/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "moodboard"

	// defaultBoard is the board ID used when --board is not given.
	defaultBoard = "default"
)

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

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Moodboard arranges weighted image clusters and replays their history",
		Long:         `Moodboard lays out weighted interest clusters without overlap, biased toward the center of the board, and keeps a timeline of saved arrangements you can scrub or replay.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.timelineCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	for _, cmd := range root.Commands() {
		c.registerBoardCompletion(cmd)
	}

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.configPath != "" {
		c.Logger.Debug("config loaded", "path", c.configPath)
	}
	return nil
}

// =============================================================================
// Collaborator Factories
// =============================================================================

// openStore opens the configured snapshot store.
func (c *CLI) openStore(ctx context.Context) (storage.Store, error) {
	opts := c.cfg.StorageOptions()
	store, err := storage.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", opts.Backend, err)
	}
	c.Logger.Debug("storage opened", "backend", opts.Backend)
	return store, nil
}

// openCache opens the configured layout cache. noCache or a disabled cache
// yields a NullCache.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.cfg.Cache
	if noCache || !cc.Enabled {
		return cache.NewNullCache(), nil
	}
	if cc.Backend == "redis" {
		return cache.NewRedisCache(ctx, cc.RedisAddr)
	}
	return cache.NewFileCache(cc.Dir)
}

// newOrchestrator wires storage and cache into an orchestrator. The
// returned function releases both.
func (c *CLI) newOrchestrator(ctx context.Context, noCache bool) (*arrange.Orchestrator, func(), error) {
	store, err := c.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	lc, err := c.openCache(ctx, noCache)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	orch := arrange.New(arrange.Options{
		Solver:   c.cfg.LayoutOptions(),
		Cache:    lc,
		CacheTTL: c.cfg.Cache.TTL.Duration,
		Store:    store,
		Logger:   c.Logger,
	})
	closeFn := func() {
		lc.Close()
		store.Close()
	}
	return orch, closeFn, nil
}
