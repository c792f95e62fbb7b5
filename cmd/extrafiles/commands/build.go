package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory override (defaults to output.directory from config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, gen, err := setupPipeline(root.Config, nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}

	ctx := context.Background()
	if err := gen.ValidateConfig(ctx, site.ModeBuild); err != nil {
		return err
	}
	return gen.Build(ctx)
}
