package site

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/extrafiles/internal/logfields"
)

// Discover walks the docs directory and returns a collection containing one
// native descriptor per regular file found. Dotfiles and dot-directories are
// skipped. WalkDir visits entries in lexical order, so the result is
// deterministic for an unchanged tree.
func Discover(docsDir string, mode Mode) (*Collection, error) {
	absDocs, err := filepath.Abs(docsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve docs dir: %w", err)
	}
	if st, statErr := os.Stat(absDocs); statErr != nil || !st.IsDir() {
		return nil, fmt.Errorf("docs dir not found or not a directory: %s", absDocs)
	}

	collection := NewCollection()
	err = filepath.WalkDir(absDocs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(absDocs, path)
		if err != nil {
			return err
		}
		collection.Append(&File{
			SourcePath: path,
			Dest:       filepath.ToSlash(rel),
			Streamed:   mode == ModeServe,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs dir %s: %w", absDocs, err)
	}

	slog.Debug("Discovered docs files", logfields.Path(absDocs), logfields.Count(collection.Len()))
	return collection, nil
}
