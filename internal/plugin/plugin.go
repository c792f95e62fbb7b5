// Package plugin provides the hook system the build pipeline invokes at
// well-defined lifecycle points: configuration loaded, file-collection
// assembly, and serve-mode watch setup.
package plugin

import (
	"fmt"

	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// WatchFunc registers an absolute path with the host's filesystem watcher.
// The watcher is an injected capability owned by the serve loop; plugins only
// compute which paths to register.
type WatchFunc func(path string) error

// Plugin is a build pipeline extension with metadata and lifecycle hooks.
// Hooks are synchronous and run in registration order at fixed points of the
// sequential build process.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, description).
	Metadata() Metadata

	// OnConfig runs once after configuration load, before any filesystem
	// access. Plugins validate their configuration slice here; an error
	// aborts startup entirely.
	OnConfig(ctx *Context) error

	// OnFiles runs during file-collection assembly. Plugins inject or
	// replace descriptors in the collection. An error aborts the pass.
	OnFiles(ctx *Context, files *site.Collection) error

	// OnServe runs once per serve pass after assembly. Plugins register the
	// absolute source paths they need watched via watch. Invoked repeatedly
	// across rebuilds, so implementations must be idempotent.
	OnServe(ctx *Context, watch WatchFunc) error
}

// Metadata describes a plugin's identity.
type Metadata struct {
	// Name is the unique plugin identifier (e.g., "extrafiles").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Description provides a human-readable summary of the plugin's purpose.
	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// Validate checks if the plugin metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	return nil
}

// Error represents an error that occurred within a plugin hook.
type Error struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Hook names the lifecycle hook that failed.
	Hook string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Hook, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new plugin error.
func NewError(pluginName, hook string, err error) *Error {
	return &Error{PluginName: pluginName, Hook: hook, Err: err}
}
