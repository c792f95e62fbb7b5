package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/extrafiles/cmd/extrafiles/commands"
	siterrors "git.home.luguber.info/inful/extrafiles/internal/errors"
	"git.home.luguber.info/inful/extrafiles/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("extrafiles"),
		kong.Description("Build and preview a docs site with files included from outside the docs tree."),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, cli); err != nil {
		slog.Error("Command failed",
			"error", err,
			"category", string(siterrors.GetCategory(err)))
		os.Exit(1)
	}
}
