package commands

import (
	"fmt"
	"os"

	"github.com/nineteen58/pitchgen/internal/slug"
	"github.com/nineteen58/pitchgen/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Slug string `arg:"" help:"Client whose rendered page should be checked"`
}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := slug.Normalize(v.Slug)
	if err != nil {
		return err
	}

	pagePath := cfg.OutputPagePath(client)
	if _, err := os.Stat(pagePath); err != nil {
		return fmt.Errorf("no rendered page for %s; run generate first", client)
	}

	issues, err := verify.CheckPage(pagePath)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Printf("%s: no issues found\n", pagePath)
		return nil
	}

	fmt.Printf("%s: %d issue(s)\n", pagePath, len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s\n", issue)
	}
	return fmt.Errorf("verification found %d issue(s)", len(issues))
}
