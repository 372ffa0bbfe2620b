// Package commands defines the pitchgen CLI surface.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/nineteen58/pitchgen/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Tool configuration file path" default:"pitchgen.yaml"`
	BaseDir string           `short:"C" name:"base-dir" help:"Base directory containing configs/, template/ and clients/" default:"."`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate the pitch page for one client"`
	Init     InitCmd     `cmd:"" help:"Create a starter configuration for a new client"`
	List     ListCmd     `cmd:"" help:"List configured clients and their generation status"`
	Preview  PreviewCmd  `cmd:"" help:"Serve generated pages locally and regenerate on change"`
	History  HistoryCmd  `cmd:"" help:"Show recent generation runs"`
	Publish  PublishCmd  `cmd:"" help:"Commit a client's generated output in the enclosing git repository"`
	Verify   VerifyCmd   `cmd:"" help:"Check a rendered page for leftover placeholders and missing assets"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel resolves the log level from the verbose flag or the
// PITCHGEN_LOG_LEVEL environment variable.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("PITCHGEN_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig loads the tool configuration honoring the global flags.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config, root.BaseDir)
}
