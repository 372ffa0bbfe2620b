package preview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler runs job on a fixed interval until the context is
// cancelled. fsnotify misses mutations on some network mounts, so preview
// offers a periodic full regeneration as a safety net.
func StartScheduler(ctx context.Context, every time.Duration, job func()) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	if _, err := scheduler.NewJob(gocron.DurationJob(every), gocron.NewTask(job)); err != nil {
		return fmt.Errorf("schedule rebuild job: %w", err)
	}

	scheduler.Start()
	slog.Info("Scheduled periodic regeneration", "interval", every)

	go func() {
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown error", "error", err)
		}
	}()
	return nil
}
