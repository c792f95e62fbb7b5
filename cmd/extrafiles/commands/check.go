package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// CheckCmd validates the configuration and performs a dry resolution pass
// without writing anything. Useful in CI and pre-commit hooks.
type CheckCmd struct{}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, gen, err := setupPipeline(root.Config, nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	if err := gen.ValidateConfig(ctx, site.ModeBuild); err != nil {
		return err
	}

	collection, _, err := gen.Assemble(ctx, site.ModeBuild)
	if err != nil {
		return err
	}

	extra := 0
	for _, f := range collection.Files() {
		if f.Extra {
			extra++
			fmt.Printf("%s <- %s\n", f.Dest, f.SourcePath)
		}
	}
	fmt.Printf("OK: %d files in collection (%d extra), config %s\n", collection.Len(), extra, cfg.Dir)
	return nil
}
