// Package build orchestrates one build or serve pass: native docs discovery,
// plugin hook dispatch, and (for build passes) physical materialization of
// the output directory.
package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/extrafiles/internal/config"
	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
	"git.home.luguber.info/inful/extrafiles/internal/logfields"
	"git.home.luguber.info/inful/extrafiles/internal/metrics"
	"git.home.luguber.info/inful/extrafiles/internal/plugin"
	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// Generator drives the build pipeline. One instance serves any number of
// sequential passes; no pass state is retained between runs.
type Generator struct {
	cfg      *config.Config
	registry *plugin.Registry
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewGenerator creates a generator for the given configuration and plugin set.
func NewGenerator(cfg *config.Config, registry *plugin.Registry, rec metrics.Recorder) *Generator {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Generator{
		cfg:      cfg,
		registry: registry,
		recorder: rec,
		logger:   slog.Default(),
	}
}

// ValidateConfig runs every plugin's configuration hook. Called once after
// configuration load, before any filesystem access; an error aborts startup.
func (g *Generator) ValidateConfig(ctx context.Context, mode site.Mode) error {
	pctx := plugin.NewContext(ctx, g.logger, g.cfg, mode, "", g.recorder)
	return g.registry.RunOnConfig(pctx)
}

// Assemble discovers the native docs files and merges plugin descriptors
// into the collection. Descriptors injected later overwrite earlier entries
// on destination collision.
func (g *Generator) Assemble(ctx context.Context, mode site.Mode) (*site.Collection, *plugin.Context, error) {
	buildID := uuid.NewString()
	pctx := plugin.NewContext(ctx, g.logger, g.cfg, mode, buildID, g.recorder)

	collection, err := site.Discover(g.cfg.AbsDocsDir(), mode)
	if err != nil {
		return nil, nil, err
	}
	if err := g.registry.RunOnFiles(pctx, collection); err != nil {
		return nil, nil, err
	}
	g.logger.Debug("Collection assembled",
		logfields.Count(collection.Len()),
		logfields.Mode(mode.String()),
		logfields.BuildID(buildID))
	return collection, pctx, nil
}

// Build runs a full production pass: assemble the collection and copy every
// file into the output directory. The output directory contains a physical
// copy of every resolved source at its computed destination afterwards.
func (g *Generator) Build(ctx context.Context) error {
	start := time.Now()
	collection, _, err := g.Assemble(ctx, site.ModeBuild)
	if err != nil {
		g.recorder.IncPassOutcome(metrics.OutcomeFailed)
		return err
	}
	bytes, err := site.Materialize(ctx, collection, g.cfg.AbsOutputDir(), g.cfg.Output.Clean)
	if err != nil {
		if ctx.Err() != nil {
			g.recorder.IncPassOutcome(metrics.OutcomeCanceled)
			return err
		}
		g.recorder.IncPassOutcome(metrics.OutcomeFailed)
		return siterrors.Wrap(err, siterrors.CategoryBuild, siterrors.SeverityError, "materialize output")
	}
	g.recorder.AddCopiedBytes(bytes)
	g.recorder.ObserveBuildDuration(time.Since(start))
	g.recorder.IncPassOutcome(metrics.OutcomeSuccess)
	g.logger.Info("Build finished",
		logfields.Count(collection.Len()),
		logfields.Path(g.cfg.AbsOutputDir()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// RegisterWatches runs every plugin's serve hook with the injected watch
// capability. Serve-mode only; invoked once per pass after assembly.
func (g *Generator) RegisterWatches(pctx *plugin.Context, watch plugin.WatchFunc) error {
	return g.registry.RunOnServe(pctx, watch)
}
