package commands

import (
	"fmt"

	"github.com/nineteen58/pitchgen/internal/slug"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Slug  string `arg:"" help:"Client identifier for the new configuration"`
	Force bool   `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := slug.Normalize(i.Slug)
	if err != nil {
		return err
	}

	path, err := cfg.InitClient(client, i.Force)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\nEdit it, then run: pitchgen generate %s\n", path, client)
	return nil
}
