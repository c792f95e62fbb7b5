package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/extrafiles/internal/config"
	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
	"git.home.luguber.info/inful/extrafiles/internal/extrafiles"
	"git.home.luguber.info/inful/extrafiles/internal/plugin"
	"git.home.luguber.info/inful/extrafiles/internal/site"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestGenerator(t *testing.T, cfg *config.Config) *Generator {
	t.Helper()
	registry := plugin.NewRegistry()
	if err := registry.Register(extrafiles.New(cfg)); err != nil {
		t.Fatalf("register plugin: %v", err)
	}
	return NewGenerator(cfg, registry, nil)
}

func TestBuildCopiesNativeAndExtraFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "index.md"), "# home")
	writeFile(t, filepath.Join(dir, "README.md"), "# project readme")

	cfg := &config.Config{
		DocsDir: "./docs",
		Output:  config.OutputConfig{Directory: "./site", Clean: true},
		Files:   []config.FileMapping{{Src: "README.md", Dest: "extras/README.md"}},
		Dir:     dir,
	}
	gen := newTestGenerator(t, cfg)

	ctx := context.Background()
	if err := gen.ValidateConfig(ctx, site.ModeBuild); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
	if err := gen.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}

	native, err := os.ReadFile(filepath.Join(dir, "site", "index.md"))
	if err != nil {
		t.Fatalf("native output missing: %v", err)
	}
	if string(native) != "# home" {
		t.Errorf("native content = %q", native)
	}
	extra, err := os.ReadFile(filepath.Join(dir, "site", "extras", "README.md"))
	if err != nil {
		t.Fatalf("extra output missing: %v", err)
	}
	if string(extra) != "# project readme" {
		t.Errorf("extra content = %q", extra)
	}
}

func TestBuildFailsOnMissingSourceWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "index.md"), "# home")

	cfg := &config.Config{
		DocsDir: "./docs",
		Output:  config.OutputConfig{Directory: "./site", Clean: true},
		Files:   []config.FileMapping{{Src: "missing.txt", Dest: "extras/missing.txt"}},
		Dir:     dir,
	}
	gen := newTestGenerator(t, cfg)

	ctx := context.Background()
	if err := gen.ValidateConfig(ctx, site.ModeBuild); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
	err := gen.Build(ctx)
	if !errors.Is(err, extrafiles.ErrMissingSource) {
		t.Fatalf("expected missing-source failure, got: %v", err)
	}
	if got := siterrors.GetCategory(err); got != siterrors.CategoryFileSystem {
		t.Fatalf("GetCategory = %q, want %q", got, siterrors.CategoryFileSystem)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "site")); !os.IsNotExist(statErr) {
		t.Errorf("failed pass must not materialize output")
	}
}

func TestValidateConfigRejectsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DocsDir: "./docs",
		Output:  config.OutputConfig{Directory: "./site"},
		Files:   []config.FileMapping{{Src: "assets/*.svg", Dest: "extras/icons"}},
		Dir:     dir,
	}
	gen := newTestGenerator(t, cfg)

	err := gen.ValidateConfig(context.Background(), site.ModeBuild)
	if err == nil {
		t.Fatalf("expected configuration rejection")
	}
	var perr *plugin.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *plugin.Error, got %T", err)
	}
	if perr.PluginName != "extrafiles" || perr.Hook != "on_config" {
		t.Fatalf("error context = %+v", perr)
	}
}

func TestAssembleExtraOverridesNative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "extras", "README.md"), "native copy")
	writeFile(t, filepath.Join(dir, "README.md"), "injected copy")

	cfg := &config.Config{
		DocsDir: "./docs",
		Output:  config.OutputConfig{Directory: "./site"},
		Files:   []config.FileMapping{{Src: "README.md", Dest: "extras/README.md"}},
		Dir:     dir,
	}
	gen := newTestGenerator(t, cfg)

	ctx := context.Background()
	if err := gen.ValidateConfig(ctx, site.ModeBuild); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
	collection, _, err := gen.Assemble(ctx, site.ModeBuild)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	f, ok := collection.Get("extras/README.md")
	if !ok {
		t.Fatalf("destination missing from collection")
	}
	if !f.Extra {
		t.Fatalf("injected descriptor must replace the discovered one")
	}
	if f.SourcePath != filepath.Join(dir, "README.md") {
		t.Fatalf("source = %q", f.SourcePath)
	}
}

func TestAssembleServeModeStreamsExtras(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "index.md"), "# home")
	src := filepath.Join(dir, "README.md")
	writeFile(t, src, "# readme")

	cfg := &config.Config{
		DocsDir: "./docs",
		Output:  config.OutputConfig{Directory: "./site"},
		Files:   []config.FileMapping{{Src: "README.md", Dest: "extras/README.md"}},
		Dir:     dir,
	}
	gen := newTestGenerator(t, cfg)

	ctx := context.Background()
	if err := gen.ValidateConfig(ctx, site.ModeServe); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
	collection, pctx, err := gen.Assemble(ctx, site.ModeServe)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if pctx.BuildID == "" {
		t.Errorf("each pass must carry a build ID")
	}
	f, _ := collection.Get("extras/README.md")
	if f == nil || !f.Streamed {
		t.Fatalf("serve-mode extras must be streamed")
	}
	if f.LocalPath(dir) != src {
		t.Fatalf("streamed descriptor must point at the true source")
	}
}
