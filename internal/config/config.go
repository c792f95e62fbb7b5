// Package config loads and validates the extrafiles site configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
)

// Config represents the application configuration
type Config struct {
	DocsDir string         `yaml:"docs_dir"`
	Output  OutputConfig   `yaml:"output"`
	Files   []FileMapping  `yaml:"files"`
	Plugin  PluginConfig   `yaml:"plugin"`
	Preview PreviewConfig  `yaml:"preview"`

	// Dir is the absolute directory containing the configuration file.
	// Relative source paths in Files resolve against it.
	Dir string `yaml:"-"`
}

// FileMapping is one configured (source, destination) rule. Src may be an
// absolute path, a path relative to the config directory, or a glob pattern.
// Dest is relative to the docs root and must end with a path separator when
// Src is a glob.
type FileMapping struct {
	Src  string `yaml:"src"`
	Dest string `yaml:"dest"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// PluginConfig holds plugin toggles.
type PluginConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ExtraFilesEnabled reports whether the extrafiles plugin should run.
// Defaults to true when unset.
func (c *Config) ExtraFilesEnabled() bool {
	if c.Plugin.Enabled == nil {
		return true
	}
	return *c.Plugin.Enabled
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Port       int    `yaml:"port"`
	LiveReload *bool  `yaml:"live_reload,omitempty"`
	Metrics    bool   `yaml:"metrics"`
	Title      string `yaml:"title"`
}

// LiveReloadEnabled defaults to true when unset.
func (p PreviewConfig) LiveReloadEnabled() bool {
	if p.LiveReload == nil {
		return true
	}
	return *p.LiveReload
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing env vars win.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				fmt.Fprintf(os.Stderr, "Note: %s couldn't be loaded: %v\n", envPath, err)
			}
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, siterrors.New(siterrors.CategoryConfig, siterrors.SeverityFatal,
			fmt.Sprintf("configuration file not found: %s", configPath))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryConfig, siterrors.SeverityFatal,
			"failed to read config file").WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryConfig, siterrors.SeverityFatal,
			"failed to unmarshal config").WithContext("path", configPath)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	config.Dir = filepath.Dir(absPath)

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.DocsDir == "" {
		config.DocsDir = "./docs"
	}
	if config.Output.Directory == "" {
		config.Output.Directory = "./site"
		config.Output.Clean = true
	}
	if config.Preview.Port == 0 {
		config.Preview.Port = 1316
	}
	if config.Preview.Title == "" {
		config.Preview.Title = "Documentation"
	}
}

// AbsDocsDir returns the docs directory resolved against the config directory.
func (c *Config) AbsDocsDir() string {
	if filepath.IsAbs(c.DocsDir) {
		return c.DocsDir
	}
	return filepath.Join(c.Dir, c.DocsDir)
}

// AbsOutputDir returns the output directory resolved against the config directory.
func (c *Config) AbsOutputDir() string {
	if filepath.IsAbs(c.Output.Directory) {
		return c.Output.Directory
	}
	return filepath.Join(c.Dir, c.Output.Directory)
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# extrafiles configuration
docs_dir: ./docs

output:
  directory: ./site
  clean: true

# Files outside docs_dir to include in the generated site.
# Paths are relative to this file's directory. A glob src requires
# a directory destination (trailing slash).
files:
  - src: ../README.md
    dest: extras/README.md
  - src: ../assets/**
    dest: extras/assets/

preview:
  port: 1316
  live_reload: true
  metrics: false
`
	if err := os.WriteFile(configPath, []byte(example), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
