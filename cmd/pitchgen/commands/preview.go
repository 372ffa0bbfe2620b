package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/nineteen58/pitchgen/internal/config"
	"github.com/nineteen58/pitchgen/internal/generator"
	"github.com/nineteen58/pitchgen/internal/metrics"
	"github.com/nineteen58/pitchgen/internal/preview"
)

// PreviewCmd implements the 'preview' command: serve generated pages and
// keep them fresh while configs or the template change.
type PreviewCmd struct {
	Port         int           `short:"p" help:"Port to serve on (0 uses the configured default)"`
	NoWatch      bool          `name:"no-watch" help:"Serve only; do not regenerate on file changes"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Also regenerate all clients on this interval (0 disables)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	port := p.Port
	if port == 0 {
		port = cfg.PreviewPort
	}
	// The preview URLs we log should match the port actually served.
	cfg.PreviewPort = port

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	store := openHistory(cfg, false)
	if store != nil {
		defer func() { _ = store.Close() }()
	}
	gen := generator.New(cfg,
		generator.WithRecorder(recorder),
		generator.WithHistory(store))

	regenerate := func(ctx context.Context, slug string) {
		if slug != "" {
			if _, err := gen.Run(ctx, slug); err != nil {
				slog.Warn("Regeneration failed", "client", slug, "error", err)
			}
			return
		}
		regenerateAll(ctx, cfg, gen)
	}

	// Initial generation so the server has something to serve.
	regenerateAll(sigctx, cfg, gen)

	server := preview.NewServer(cfg, port, reg)
	if err := server.Start(sigctx); err != nil {
		return err
	}
	fmt.Printf("Serving %s on http://localhost:%d/ (Ctrl-C to stop)\n", cfg.BaseDir, port)

	if !p.NoWatch {
		watcher := preview.NewWatcher(cfg, regenerate)
		go func() {
			if err := watcher.Run(sigctx); err != nil {
				slog.Error("Watcher stopped", "error", err)
			}
		}()
	}

	if p.RebuildEvery > 0 {
		err := preview.StartScheduler(sigctx, p.RebuildEvery, func() {
			regenerateAll(sigctx, cfg, gen)
		})
		if err != nil {
			return err
		}
	}

	<-sigctx.Done()
	slog.Info("Shutting down preview server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	return server.Stop(stopCtx)
}

// regenerateAll generates every client that has a configuration file.
func regenerateAll(ctx context.Context, cfg *config.Config, gen *generator.Generator) {
	slugs, err := cfg.ListClients()
	if err != nil {
		slog.Warn("Cannot list clients", "error", err)
		return
	}
	for _, slug := range slugs {
		if _, err := gen.Run(ctx, slug); err != nil {
			slog.Warn("Regeneration failed", "client", slug, "error", err)
		}
	}
}
