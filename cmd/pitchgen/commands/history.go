package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/nineteen58/pitchgen/internal/history"
	"github.com/nineteen58/pitchgen/internal/slug"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Client string `help:"Only show runs for this client"`
	Limit  int    `default:"20" help:"Maximum number of runs to show"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := ""
	if h.Client != "" {
		if client, err = slug.Normalize(h.Client); err != nil {
			return err
		}
	}

	store, err := history.NewSQLiteStore(cfg.HistoryDBPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), client, h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No generation runs recorded yet.")
		return nil
	}

	fmt.Printf("%-20s %-16s %-8s %-10s %-6s %s\n",
		"WHEN", "CLIENT", "STATUS", "UNRESOLVED", "AUDIO", "DURATION")
	for _, rec := range records {
		fmt.Printf("%-20s %-16s %-8s %-10d %-6d %s\n",
			rec.StartedAt.Format(time.DateTime), rec.Client, rec.Status,
			rec.Unresolved, rec.AudioFiles, rec.Duration.Round(time.Millisecond))
	}
	return nil
}
