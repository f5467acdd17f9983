package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/buildinfo"
	"github.com/matzehuels/causeview/pkg/cache"
	"github.com/matzehuels/causeview/pkg/config"
	"github.com/matzehuels/causeview/pkg/driver"
	"github.com/matzehuels/causeview/pkg/graph"
	"github.com/matzehuels/causeview/pkg/layout"
	"github.com/matzehuels/causeview/pkg/palette"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "causeview",
		Short:        "Causeview explores causality trees step by step",
		Long:         `Causeview loads a causality tree, lays it out as a hierarchy and lets you scrub through pipeline steps in the browser or the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.helloCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies an optional positional input
// path. Command-specific flags are applied by the caller.
func (c *CLI) loadConfig(args []string) (config.Config, error) {
	cfg, err := config.Load(c.configPath, c.Logger)
	if err != nil {
		return cfg, err
	}
	if len(args) > 0 && args[0] != "" {
		cfg.Input.Path = args[0]
	}
	return cfg, nil
}

// layoutFlags are shared by every command that lays out frames.
type layoutFlags struct {
	engine  string
	rankdir string
	seed    uint64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.engine, "engine", layout.EngineDot, "layout engine: dot (falls back to spring), spring")
	cmd.Flags().StringVar(&f.rankdir, "rankdir", string(layout.RankTB), "dot rank direction: TB, LR")
	cmd.Flags().Uint64Var(&f.seed, "seed", layout.DefaultSeed, "random seed for the spring layout")
}

// apply overrides cfg with flags the user set explicitly.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("engine") {
		cfg.Layout.Engine = f.engine
	}
	if cmd.Flags().Changed("rankdir") {
		cfg.Layout.RankDir = f.rankdir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Layout.Seed = f.seed
	}
	return cfg.Validate()
}

// =============================================================================
// Runtime Factory
// =============================================================================

// runtime bundles everything a command needs to render frames.
type runtime struct {
	cfg    config.Config
	state  driver.AppState
	driver *driver.Driver
	cache  cache.Cache
}

// newRuntime loads the input graph and builds the driver. A missing or
// broken input file is returned before any UI starts.
func newRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := graph.ReadFile(cfg.Input.Path)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded "+cfg.Input.Path, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	state := driver.NewAppState(g, palette.Tab20)
	state.Colors = state.Colors.WithNeutral(cfg.Scene.NeutralColor)

	sel, err := layout.New(cfg.LayoutOptions(logger))
	if err != nil {
		return nil, err
	}

	var c cache.Cache = cache.NewNullCache()
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache()
	}

	d := driver.New(state, driver.Options{
		Layout: sel,
		Scene:  cfg.SceneOptions(),
		Cache:  c,
		Logger: logger,
	})
	logger.Debug("driver ready", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "min_step", state.MinStep, "max_step", state.MaxStep)
	return &runtime{cfg: cfg, state: state, driver: d, cache: c}, nil
}

func (r *runtime) Close() error { return r.cache.Close() }
