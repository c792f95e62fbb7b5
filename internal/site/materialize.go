package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/extrafiles/internal/logfields"
)

// Materialize writes every collection file under outputDir. When clean is
// set the output directory is removed first. Only called for build passes;
// serve passes never write.
func Materialize(ctx context.Context, c *Collection, outputDir string, clean bool) (int64, error) {
	if clean {
		if err := os.RemoveAll(outputDir); err != nil {
			return 0, fmt.Errorf("clean output dir %s: %w", outputDir, err)
		}
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	var total int64
	for _, f := range c.Files() {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
		n, err := f.CopyTo(outputDir)
		if err != nil {
			return total, err
		}
		total += n
		slog.Debug("Copied file", logfields.Source(f.SourcePath), logfields.Dest(f.Dest))
	}
	slog.Info("Materialized site", logfields.Count(c.Len()), logfields.Path(outputDir))
	return total, nil
}
