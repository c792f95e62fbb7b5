// Package extrafiles materializes files living outside the docs tree into
// the generated site. A declarative list of (source, destination) rules is
// expanded against the filesystem and injected into the build's file
// collection: streamed in place during live preview, physically copied on a
// production build.
package extrafiles

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/extrafiles/internal/config"
	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
)

// SourceEntry is one configured mapping rule, immutable after configuration
// load. Src may be absolute or config-dir-relative and may contain the glob
// metacharacters *, ? and [...]. Dest is relative to the docs root and must
// name a directory (trailing separator) when Src is a glob.
type SourceEntry struct {
	Src  string
	Dest string
}

// EntriesFromConfig converts the host-parsed files list into source entries,
// preserving configuration order.
func EntriesFromConfig(mappings []config.FileMapping) []SourceEntry {
	entries := make([]SourceEntry, len(mappings))
	for i, m := range mappings {
		entries[i] = SourceEntry{Src: m.Src, Dest: m.Dest}
	}
	return entries
}

// IsGlob reports whether the entry's source contains glob metacharacters.
func (e SourceEntry) IsGlob() bool {
	return strings.ContainsAny(e.Src, "*?[")
}

// destDir reports whether the destination carries a directory marker.
func (e SourceEntry) destDir() bool {
	return strings.HasSuffix(e.Dest, "/") || strings.HasSuffix(e.Dest, "\\")
}

// normalizedDest returns the destination in forward-slash relative form,
// without any trailing separator.
func (e SourceEntry) normalizedDest() string {
	d := strings.ReplaceAll(e.Dest, "\\", "/")
	return path.Clean(strings.TrimRight(d, "/"))
}

// ValidateEntries enforces the per-entry configuration invariants. It runs
// before any filesystem access; a violation is fatal for startup.
func ValidateEntries(entries []SourceEntry) error {
	for i, e := range entries {
		if e.Src == "" {
			return siterrors.ValidationError(fmt.Sprintf("files[%d]: src must not be empty", i))
		}
		if e.Dest == "" {
			return siterrors.ValidationError(fmt.Sprintf("files[%d]: dest must not be empty", i))
		}
		if path.IsAbs(strings.ReplaceAll(e.Dest, "\\", "/")) {
			return siterrors.ValidationError(fmt.Sprintf("files[%d]: dest must be relative, got %q", i, e.Dest))
		}
		if e.IsGlob() && !e.destDir() {
			return siterrors.ValidationError(fmt.Sprintf(
				"files[%d]: src %q is a glob pattern, dest %q must be a directory (end with '/')", i, e.Src, e.Dest))
		}
	}
	return nil
}
