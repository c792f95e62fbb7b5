package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/extrafiles/internal/build"
	"git.home.luguber.info/inful/extrafiles/internal/config"
	"git.home.luguber.info/inful/extrafiles/internal/extrafiles"
	"git.home.luguber.info/inful/extrafiles/internal/metrics"
	"git.home.luguber.info/inful/extrafiles/internal/plugin"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"extrafiles.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the site into the output directory"`
	Serve ServeCmd `cmd:"" help:"Serve the site locally with live reload"`
	Check CheckCmd `cmd:"" help:"Validate configuration and resolve entries without writing anything"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// setupPipeline loads configuration and wires the plugin registry and
// generator shared by the build and check commands.
func setupPipeline(configPath string, rec metrics.Recorder) (*config.Config, *build.Generator, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gen, err := newGenerator(cfg, rec)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gen, nil
}

// newGenerator wires the plugin registry and generator for a loaded config.
func newGenerator(cfg *config.Config, rec metrics.Recorder) (*build.Generator, error) {
	registry := plugin.NewRegistry()
	if err := registry.Register(extrafiles.New(cfg)); err != nil {
		return nil, err
	}
	return build.NewGenerator(cfg, registry, rec), nil
}
