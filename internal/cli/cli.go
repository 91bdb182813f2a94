package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/buildinfo"
	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/config"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/pipeline"
	"github.com/matzehuels/relgraph/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "relgraph"

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

	// Config is loaded before any subcommand runs.
	Config     *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
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
		Short:        "relgraph draws interactive relationship graphs",
		Long:         `relgraph lays out node-link relationship graphs, renders them with hover labels to PNG, SVG or PDF, and serves an interactive viewer with search.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, installs logging hooks and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	installHooks(c.Logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.Logger), nil
}

// newCache opens the configured cache. The CLI falls back to the file cache
// when the config leaves caching off, so repeated renders are fast.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.Config.CacheOptions()
	if opts.Backend == cache.BackendNone || opts.Backend == "" {
		opts.Backend = cache.BackendFile
	}
	ch, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", opts.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns pipeline options from the loaded config.
// Command flags override individual fields afterwards.
func (c *CLI) pipelineOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		Engine:         cfg.Layout.Engine,
		Theme:          cfg.ThemeMode(),
		Settings:       cfg.Settings(),
		LabelThreshold: cfg.Labels.Threshold,
		Width:          cfg.Server.Width,
		Height:         cfg.Server.Height,
		TTL:            cfg.Cache.TTL.Duration,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) ([]render.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []render.Format{render.SVG}, nil
	}
	var formats []render.Format
	for _, part := range strings.Split(s, ",") {
		f, err := render.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// outputPath derives an output file from the input path when none is given.
func outputPath(input, output, suffix string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// requireNode returns a NODE_NOT_FOUND error when id is set but unknown.
func requireNode(p *pipeline.Prepared, id string) error {
	if id == "" {
		return nil
	}
	if _, ok := p.Graph.Node(id); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	return nil
}
