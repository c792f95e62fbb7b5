// Package version exposes build-time version information.
package version

// Version is the application version, overridable at build time via
// -ldflags "-X git.home.luguber.info/inful/extrafiles/internal/version.Version=...".
var Version = "v1.2.0-dev"
