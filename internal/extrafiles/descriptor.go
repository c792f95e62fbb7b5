package extrafiles

import (
	"errors"
	"fmt"
	"os"

	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// ErrMissingSource reports a configured source that does not resolve to an
// existing regular file (or a glob whose base directory does not exist).
// Intentionally fatal for the whole pass: silently omitting an explicitly
// configured file is a worse failure mode for documentation than failing
// loudly.
var ErrMissingSource = errors.New("missing source")

// ResolvedFile is one concrete file produced by expanding a source entry.
type ResolvedFile struct {
	Source string // Fully resolved absolute filesystem location
	Dest   string // Forward-slash relative path within the virtual tree
}

// NewDescriptor validates the resolved source and wraps it into a host file
// descriptor. Serve passes get a streamed descriptor whose declared local
// path is the true absolute source, read lazily at request time; build
// passes get a disk-backed descriptor copied at materialization time. No
// filesystem writes happen here.
func NewDescriptor(resolved ResolvedFile, mode site.Mode) (*site.File, error) {
	st, err := os.Stat(resolved.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, resolved.Source)
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrMissingSource, resolved.Source)
	}
	return &site.File{
		SourcePath: resolved.Source,
		Dest:       resolved.Dest,
		Extra:      true,
		Streamed:   mode == site.ModeServe,
	}, nil
}
