package commands

import (
	"fmt"
	"os"

	"github.com/nineteen58/pitchgen/internal/errors"
	"github.com/nineteen58/pitchgen/internal/publish"
	"github.com/nineteen58/pitchgen/internal/slug"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct {
	Slug    string `arg:"" help:"Client whose generated output should be committed"`
	Message string `short:"m" help:"Commit message (defaults to a standard one)"`
}

func (p *PublishCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := slug.Normalize(p.Slug)
	if err != nil {
		return err
	}

	outDir := cfg.ClientOutputDir(client)
	if st, err := os.Stat(outDir); err != nil || !st.IsDir() {
		return errors.New(errors.CategoryPublish, errors.SeverityFatal,
			"no generated output to publish; run generate first").
			WithContext("client", client).WithContext("path", outDir)
	}

	message := p.Message
	if message == "" {
		message = fmt.Sprintf("Publish pitch page for %s", client)
	}

	result, err := publish.Publish(outDir, message)
	if err != nil {
		return err
	}

	fmt.Printf("Committed %s (%d file(s))\n", result.CommitHash[:12], result.Staged)
	fmt.Printf("Push to make it live at:\n  %s\n", cfg.PagesURL(client))
	return nil
}
