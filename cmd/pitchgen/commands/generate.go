package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nineteen58/pitchgen/internal/config"
	"github.com/nineteen58/pitchgen/internal/generator"
	"github.com/nineteen58/pitchgen/internal/history"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Slug      string `arg:"" help:"Client identifier (e.g. old-mutual)"`
	NoHistory bool   `name:"no-history" help:"Skip recording this run in the history database"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := openHistory(cfg, g.NoHistory)
	if store != nil {
		defer func() { _ = store.Close() }()
	}
	gen := generator.New(cfg, generator.WithHistory(store))

	result, err := gen.Run(context.Background(), g.Slug)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// openHistory opens the run history store, returning nil (history disabled)
// when unavailable. A broken history database must never block generation.
func openHistory(cfg *config.Config, disabled bool) history.Store {
	if disabled {
		return nil
	}
	store, err := history.NewSQLiteStore(cfg.HistoryDBPath())
	if err != nil {
		slog.Warn("Run history unavailable", "path", cfg.HistoryDBPath(), "error", err)
		return nil
	}
	return store
}

// printResult writes the operator-facing completion report to stdout.
func printResult(result *generator.Result) {
	fmt.Println()
	if result.AudioFound {
		fmt.Printf("  Audio copied (%d file(s))\n", result.AudioFiles)
	} else {
		fmt.Println("  Note: no audio folder found for this client.")
		fmt.Println("  Add audio files under configs/<slug>/audio/ and re-run to include them.")
	}
	fmt.Printf("\n  Generated -> %s\n", result.OutputPath)
	fmt.Printf("\n  Local preview:\n    %s\n", result.PreviewURL)
	fmt.Printf("\n  GitHub Pages (after publish and push):\n    %s\n\n", result.PagesURL)
}
