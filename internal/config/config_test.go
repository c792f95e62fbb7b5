package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "extrafiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "files:\n  - src: ../README.md\n    dest: extras/README.md\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DocsDir != "./docs" {
		t.Errorf("docs_dir default = %q", cfg.DocsDir)
	}
	if cfg.Output.Directory != "./site" || !cfg.Output.Clean {
		t.Errorf("output defaults = %+v", cfg.Output)
	}
	if cfg.Preview.Port != 1316 {
		t.Errorf("port default = %d", cfg.Preview.Port)
	}
	if cfg.Preview.Title != "Documentation" {
		t.Errorf("title default = %q", cfg.Preview.Title)
	}
	if !cfg.ExtraFilesEnabled() {
		t.Errorf("plugin must be enabled by default")
	}
	if !cfg.Preview.LiveReloadEnabled() {
		t.Errorf("live reload must be enabled by default")
	}
	if len(cfg.Files) != 1 || cfg.Files[0].Src != "../README.md" {
		t.Errorf("files = %+v", cfg.Files)
	}
}

func TestLoadSetsConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "docs_dir: ./docs\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	resolved, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(cfg.Dir)
	if gotDir != resolved {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if !filepath.IsAbs(cfg.AbsDocsDir()) {
		t.Errorf("AbsDocsDir must be absolute: %q", cfg.AbsDocsDir())
	}
	if !strings.HasPrefix(cfg.AbsDocsDir(), cfg.Dir) {
		t.Errorf("relative docs dir must resolve against config dir")
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("EXTRAFILES_TEST_DOCS", "./docs-from-env")
	dir := t.TempDir()
	path := writeConfig(t, dir, "docs_dir: ${EXTRAFILES_TEST_DOCS}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DocsDir != "./docs-from-env" {
		t.Errorf("docs_dir = %q, want env expansion", cfg.DocsDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
	if !siterrors.IsCategory(err, siterrors.CategoryConfig) {
		t.Fatalf("missing config file must classify as config, got %q", siterrors.GetCategory(err))
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "docs_dir: [unclosed\n")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
	if !siterrors.IsCategory(err, siterrors.CategoryConfig) {
		t.Fatalf("parse failure must classify as config, got %q", siterrors.GetCategory(err))
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "preview:\n  port: 99999\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation failure for out-of-range port")
	}
}

func TestPluginDisabledFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "plugin:\n  enabled: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExtraFilesEnabled() {
		t.Errorf("explicit enabled: false must win over the default")
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extrafiles.yaml")

	if err := Init(path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated config must load: %v", err)
	}
	if len(cfg.Files) == 0 {
		t.Errorf("example config should include file mappings")
	}

	if err := Init(path, false); err == nil {
		t.Fatalf("Init must refuse to overwrite without force")
	}
	if err := Init(path, true); err != nil {
		t.Fatalf("Init with force: %v", err)
	}
}
