// Package cli implements the buttonhalo command-line interface.
//
// The CLI computes and renders button placements around a selection,
// previews them interactively in the terminal, and serves the same pipeline
// over HTTP. It is built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: place controls for a scenario and print their positions
//   - render: write SVG, PNG, PDF, JSON, DOT or Graphviz SVG artifacts
//   - preview: drag and resize a selection in the terminal
//   - serve: HTTP layout and render API
//   - scenario init: write a starter scenario file
//   - cache: manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/pkg/buildinfo"
	"github.com/matzehuels/buttonhalo/pkg/cache"
	"github.com/matzehuels/buttonhalo/pkg/config"
	"github.com/matzehuels/buttonhalo/pkg/control"
	"github.com/matzehuels/buttonhalo/pkg/pipeline"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		Config:     config.Default(),
		configPath: config.Path(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "buttonhalo places tool buttons around a screen selection",
		Long:         `buttonhalo computes where an overlay's tool buttons go around a rectangular selection, growing outward ring by ring and falling back to packing them inside when the selection fills the screen.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.scenarioCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	level, _ := cfg.LogLevel()
	c.SetLogLevel(level)
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	// Entries written by another release are never read back.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Get().Version)
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache builds the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	default:
		return cache.NewFileCache(c.Config.CacheDir())
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns pipeline options carrying CLI-wide settings.
func (c *CLI) pipelineOptions() pipeline.Options {
	ttl, _ := c.Config.CacheTTL()
	return pipeline.Options{TTL: ttl, Logger: c.Logger}
}

// loadScenario reads path, or builds the configured default scenario when
// path is empty.
func (c *CLI) loadScenario(ctx context.Context, runner *pipeline.Runner, path string) (*scenario.Scenario, error) {
	if path == "" {
		return c.defaultScenario(), nil
	}
	return runner.Load(ctx, path)
}

// defaultScenario centres a selection a quarter of the display in size on
// the configured display.
func (c *CLI) defaultScenario() *scenario.Scenario {
	s := scenario.Default()
	d := c.Config.Display
	s.Display = scenario.Rect{Width: d.Width, Height: d.Height}
	w, h := d.Width/4, d.Height/4
	s.Selection = scenario.Rect{X: (d.Width - w) / 2, Y: (d.Height - h) / 2, Width: w, Height: h}

	n := c.Config.Controls.Count
	s.Controls = scenario.Controls{
		Count:  n,
		Size:   c.Config.Controls.Size,
		Labels: append([]string(nil), scenario.DefaultLabels[:min(n, len(scenario.DefaultLabels))]...),
	}
	if s.Controls.Size <= 0 {
		s.Controls.Size = control.DefaultSize
	}
	return s
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	formats := strings.Split(s, ",")
	for i, f := range formats {
		formats[i] = strings.TrimSpace(f)
	}
	return formats
}
