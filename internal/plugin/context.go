package plugin

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/extrafiles/internal/config"
	"git.home.luguber.info/inful/extrafiles/internal/metrics"
	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// Context provides plugins with access to pipeline services and per-pass
// state. It is passed to every hook, allowing plugins to interact with the
// build without tight coupling.
type Context struct {
	// Context is the standard Go context for cancellation and deadlines.
	Context context.Context

	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// Config is the loaded site configuration.
	Config *config.Config

	// ConfigDir is the absolute directory containing the configuration file.
	// Relative source paths resolve against it.
	ConfigDir string

	// Mode distinguishes build passes from serve passes.
	Mode site.Mode

	// BuildID uniquely identifies this pass.
	BuildID string

	// Metrics records observability data for this pass.
	Metrics metrics.Recorder
}

// NewContext creates a plugin context for one build/serve pass.
func NewContext(ctx context.Context, logger *slog.Logger, cfg *config.Config, mode site.Mode, buildID string, rec metrics.Recorder) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Context{
		Context:   ctx,
		Logger:    logger,
		Config:    cfg,
		ConfigDir: cfg.Dir,
		Mode:      mode,
		BuildID:   buildID,
		Metrics:   rec,
	}
}
