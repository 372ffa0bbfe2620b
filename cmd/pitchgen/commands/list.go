package commands

import (
	"fmt"
	"os"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slugs, err := cfg.ListClients()
	if err != nil {
		return err
	}
	if len(slugs) == 0 {
		fmt.Println("No client configurations found. Create one with: pitchgen init <slug>")
		return nil
	}

	fmt.Printf("%-24s %-10s %s\n", "CLIENT", "GENERATED", "AUDIO")
	for _, s := range slugs {
		generated := "no"
		if _, err := os.Stat(cfg.OutputPagePath(s)); err == nil {
			generated = "yes"
		}
		audio := "no"
		if st, err := os.Stat(cfg.AudioSourceDir(s)); err == nil && st.IsDir() {
			audio = "yes"
		}
		fmt.Printf("%-24s %-10s %s\n", s, generated, audio)
	}
	return nil
}
