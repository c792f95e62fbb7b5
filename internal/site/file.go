// Package site holds the virtual document tree: the in-memory collection of
// all files destined for the generated site, independent of physical staging.
package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Mode selects between a production build and a live preview pass.
type Mode string

const (
	// ModeBuild physically copies every collection file into the output directory.
	ModeBuild Mode = "build"
	// ModeServe streams content from its original location at request time.
	ModeServe Mode = "serve"
)

// String returns the string representation of the mode.
func (m Mode) String() string { return string(m) }

// File is one entry of the virtual document tree. A single descriptor type
// covers both discovered docs files and plugin-injected extra files; the
// Streamed tag switches between lazy pass-through reads (serve) and physical
// copies (build).
type File struct {
	SourcePath string // Absolute path content is read from
	Dest       string // Forward-slash relative path within the virtual tree
	Extra      bool   // Injected by a plugin rather than discovered under docs_dir
	Streamed   bool   // Serve mode: content is read lazily from SourcePath, never staged
}

// LocalPath reports the path the host uses for intermediate bookkeeping.
// Streamed descriptors declare their true absolute source path so existence
// checks and request-time reads operate on the real file.
func (f *File) LocalPath(outputDir string) string {
	if f.Streamed {
		return f.SourcePath
	}
	return filepath.Join(outputDir, filepath.FromSlash(f.Dest))
}

// Open returns a reader over the file's current content. The caller owns the
// returned handle and must close it.
func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.SourcePath)
}

// CopyTo writes the file's bytes to its destination under outputDir,
// creating parent directories as needed. Returns the number of bytes copied.
func (f *File) CopyTo(outputDir string) (int64, error) {
	src, err := os.Open(f.SourcePath)
	if err != nil {
		return 0, fmt.Errorf("open source %s: %w", f.SourcePath, err)
	}
	defer src.Close()

	outPath := filepath.Join(outputDir, filepath.FromSlash(f.Dest))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return 0, fmt.Errorf("create directory for %s: %w", outPath, err)
	}
	dst, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create output %s: %w", outPath, err)
	}
	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("copy %s -> %s: %w", f.SourcePath, outPath, err)
	}
	return n, nil
}
