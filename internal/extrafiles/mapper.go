package extrafiles

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrOutsideGlobBase reports a resolved path unexpectedly outside its glob's
// base directory. Correct expansion never produces one; this is an internal
// invariant violation, fatal and distinct from a missing source.
var ErrOutsideGlobBase = errors.New("resolved path outside glob base")

// MapDestination computes the destination of a resolved source path within
// the virtual document tree. Non-glob entries map to their configured dest
// verbatim (normalized to forward slashes). Glob entries map to dest joined
// with the resolved path made relative to the glob base, preserving directory
// structure beneath the glob anchor.
func MapDestination(entry SourceEntry, resolvedPath, configDir string) (string, error) {
	if !entry.IsGlob() {
		return entry.normalizedDest(), nil
	}

	base := GlobBase(entry, configDir)
	rel, err := filepath.Rel(base, filepath.Clean(resolvedPath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s not under %s", ErrOutsideGlobBase, resolvedPath, base)
	}
	return path.Join(entry.normalizedDest(), filepath.ToSlash(rel)), nil
}
