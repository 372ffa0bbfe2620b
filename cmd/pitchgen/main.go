package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nineteen58/pitchgen/cmd/pitchgen/commands"
)

var version = "0.3.0"

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("pitchgen"),
		kong.Description("Generate client pitch pages from a template and per-client configuration."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := kctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
