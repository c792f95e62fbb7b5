package extrafiles

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/extrafiles/internal/config"
	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
	"git.home.luguber.info/inful/extrafiles/internal/logfields"
	"git.home.luguber.info/inful/extrafiles/internal/plugin"
	"git.home.luguber.info/inful/extrafiles/internal/site"
	"git.home.luguber.info/inful/extrafiles/internal/util/sets"
)

// Plugin coordinates the extrafiles lifecycle against the build pipeline:
// entry validation on configuration load, descriptor injection during
// file-collection assembly, and watch registration in serve mode.
type Plugin struct {
	entries   []SourceEntry
	enabled   bool
	configDir string
}

// New builds the plugin from the loaded site configuration.
func New(cfg *config.Config) *Plugin {
	return &Plugin{
		entries: EntriesFromConfig(cfg.Files),
		enabled: cfg.ExtraFilesEnabled(),
	}
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Name:        "extrafiles",
		Version:     "v1.2.0",
		Description: "Include files from outside the docs tree in the generated site",
	}
}

// OnConfig validates the configured entries. Runs before any filesystem
// access; a malformed entry aborts startup.
func (p *Plugin) OnConfig(ctx *plugin.Context) error {
	if !p.enabled {
		ctx.Logger.Debug("extrafiles plugin disabled, skipping")
		return nil
	}
	p.configDir = ctx.ConfigDir
	if err := ValidateEntries(p.entries); err != nil {
		return err
	}
	ctx.Logger.Debug("extrafiles entries validated", logfields.Count(len(p.entries)))
	return nil
}

// expand resolves every entry into concrete (source, destination) pairs in
// deterministic order: configuration order, then lexicographic match order.
// A glob whose base directory does not exist is a missing source; a glob
// matching zero files under an existing base is not.
func (p *Plugin) expand() ([]ResolvedFile, error) {
	var resolved []ResolvedFile
	for i, entry := range p.entries {
		if entry.IsGlob() {
			base := GlobBase(entry, p.configDir)
			if st, err := os.Stat(base); err != nil || !st.IsDir() {
				return nil, fmt.Errorf("files[%d]: glob base directory %s: %w", i, base, ErrMissingSource)
			}
		}
		paths, err := Resolve(entry, p.configDir)
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %w", i, err)
		}
		if entry.IsGlob() {
			slog.Debug("Expanded glob",
				logfields.Entry(i),
				logfields.Pattern(entry.Src),
				logfields.Count(len(paths)))
		}
		for _, src := range paths {
			dest, err := MapDestination(entry, src, p.configDir)
			if err != nil {
				return nil, fmt.Errorf("files[%d]: %w", i, err)
			}
			resolved = append(resolved, ResolvedFile{Source: src, Dest: dest})
		}
	}
	return resolved, nil
}

// OnFiles expands entries and merges the resulting descriptors into the
// collection. A destination collision overwrites the earlier entry, matching
// the collection's last-registered-wins semantics. A non-glob source that
// does not exist aborts the pass.
func (p *Plugin) OnFiles(ctx *plugin.Context, files *site.Collection) error {
	if !p.enabled {
		return nil
	}
	start := time.Now()
	resolved, err := p.expand()
	if err != nil {
		return classifyResolveError(err)
	}
	for _, rf := range resolved {
		desc, err := NewDescriptor(rf, ctx.Mode)
		if err != nil {
			return classifyResolveError(err)
		}
		files.Append(desc)
	}
	ctx.Metrics.AddFilesResolved(len(resolved))
	ctx.Metrics.ObserveResolveDuration(time.Since(start))
	ctx.Logger.Debug("extrafiles staged",
		logfields.Count(len(resolved)),
		logfields.Mode(ctx.Mode.String()),
		logfields.BuildID(ctx.BuildID))
	return nil
}

// classifyResolveError attaches the structured category to resolution
// failures crossing the hook boundary: missing sources are filesystem
// errors, an out-of-base mapping is an internal invariant violation.
func classifyResolveError(err error) error {
	switch {
	case errors.Is(err, ErrMissingSource):
		return siterrors.Wrap(err, siterrors.CategoryFileSystem, siterrors.SeverityFatal, "source resolution failed")
	case errors.Is(err, ErrOutsideGlobBase):
		return siterrors.Wrap(err, siterrors.CategoryInternal, siterrors.SeverityFatal, "destination mapping failed")
	default:
		return err
	}
}

// OnServe registers every distinct absolute source path resolved this pass
// with the injected watcher. Failures here must never take down a running
// preview: resolution errors are logged and swallowed, missing sources are
// skipped. Safe to invoke repeatedly across rebuilds.
func (p *Plugin) OnServe(ctx *plugin.Context, watch plugin.WatchFunc) error {
	if !p.enabled {
		return nil
	}
	resolved, err := p.expand()
	if err != nil {
		ctx.Logger.Warn("extrafiles watch expansion failed", logfields.Error(err))
		return nil
	}
	paths := sets.New[string]()
	for _, rf := range resolved {
		if _, err := os.Stat(rf.Source); err != nil {
			continue
		}
		paths.Add(rf.Source)
	}
	for _, path := range sets.SortedStrings(paths) {
		if err := watch(path); err != nil {
			ctx.Logger.Warn("extrafiles watch registration failed",
				logfields.Path(path), logfields.Error(err))
		}
	}
	ctx.Logger.Debug("extrafiles watching sources", logfields.Count(len(paths)))
	return nil
}
