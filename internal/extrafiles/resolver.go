package extrafiles

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// absPattern returns src joined to configDir (unless already absolute) in
// forward-slash form, suitable as a doublestar pattern.
func absPattern(src, configDir string) string {
	p := src
	if !filepath.IsAbs(p) {
		p = filepath.Join(configDir, p)
	}
	return filepath.ToSlash(p)
}

// Resolve turns a configured source string into zero or more concrete
// absolute filesystem paths. Non-glob sources yield exactly one path without
// an existence check; missing-file errors surface uniformly at descriptor
// construction. Glob sources are expanded against the filesystem and
// returned in lexicographic order. Zero glob matches is not an error.
func Resolve(entry SourceEntry, configDir string) ([]string, error) {
	if !entry.IsGlob() {
		p := entry.Src
		if !filepath.IsAbs(p) {
			p = filepath.Join(configDir, p)
		}
		return []string{filepath.Clean(p)}, nil
	}

	pattern := absPattern(entry.Src, configDir)
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand glob %q: %w", entry.Src, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// GlobBase returns the absolute glob base of a glob entry: the longest path
// prefix of the pattern containing no metacharacters. Matched files keep
// their directory structure relative to this anchor at the destination.
func GlobBase(entry SourceEntry, configDir string) string {
	base, _ := doublestar.SplitPattern(absPattern(entry.Src, configDir))
	return filepath.Clean(filepath.FromSlash(base))
}
