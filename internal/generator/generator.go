// Package generator implements the page generation pipeline: validate
// inputs, flatten the client configuration, substitute placeholders, write
// the page, and mirror audio assets.
package generator

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nineteen58/pitchgen/internal/assets"
	"github.com/nineteen58/pitchgen/internal/config"
	"github.com/nineteen58/pitchgen/internal/errors"
	"github.com/nineteen58/pitchgen/internal/history"
	"github.com/nineteen58/pitchgen/internal/metrics"
	"github.com/nineteen58/pitchgen/internal/render"
	"github.com/nineteen58/pitchgen/internal/slug"
	"github.com/nineteen58/pitchgen/internal/snippets"
)

// Result reports what a successful generation produced.
type Result struct {
	Client     string
	RunID      string
	OutputPath string
	Unresolved []string
	AudioFiles int
	AudioFound bool
	PreviewURL string
	PagesURL   string
	Duration   time.Duration
}

// Generator runs the generation pipeline for one client at a time.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	store    history.Store // optional; nil disables run history
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder injects a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(g *Generator) {
		if rec != nil {
			g.recorder = rec
		}
	}
}

// WithHistory injects a run history store. Append failures are logged, not
// fatal: history is bookkeeping, the page on disk is the deliverable.
func WithHistory(store history.Store) Option {
	return func(g *Generator) { g.store = store }
}

// New creates a Generator for the given tool configuration.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run generates the page for one client. Validation failures (unknown
// client, missing template) abort before anything is written; unresolved
// placeholders are warnings and generation still completes.
func (g *Generator) Run(ctx context.Context, rawSlug string) (*Result, error) {
	start := time.Now()

	result, err := g.run(ctx, rawSlug)
	if err != nil {
		g.recorder.IncGenerateOutcome(metrics.OutcomeFailed)
		g.recordFailure(ctx, rawSlug, start)
		return nil, err
	}

	result.Duration = time.Since(start)
	g.recorder.ObserveGenerateDuration(result.Client, result.Duration)
	g.recorder.AddUnresolvedTokens(len(result.Unresolved))
	g.recorder.AddAudioFilesCopied(result.AudioFiles)

	outcome := metrics.OutcomeSuccess
	if len(result.Unresolved) > 0 {
		outcome = metrics.OutcomeWarning
	}
	g.recorder.IncGenerateOutcome(outcome)
	g.recordHistory(ctx, result, outcome, start)
	return result, nil
}

func (g *Generator) run(ctx context.Context, rawSlug string) (*Result, error) {
	client, err := slug.Normalize(rawSlug)
	if err != nil {
		return nil, err
	}

	// Validate inputs before writing anything.
	configPath, ok := g.cfg.ClientConfigPath(client)
	if !ok {
		return nil, errors.ClientConfigNotFound(client, configPath)
	}
	templatePath := g.cfg.TemplateFile()
	if st, err := os.Stat(templatePath); err != nil || st.IsDir() {
		return nil, errors.TemplateNotFound(templatePath)
	}

	doc, err := config.LoadClientDocument(configPath)
	if err != nil {
		return nil, err
	}
	flat := config.Flatten(doc)

	// Markdown snippets become snippets.<name> keys; explicit config keys win.
	snips, err := snippets.Load(g.cfg.SnippetsDir(client))
	if err != nil {
		return nil, errors.RenderError(err)
	}
	for key, value := range snips {
		if _, exists := flat[key]; !exists {
			flat[key] = value
		}
	}

	templateText, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, errors.RenderError(err)
	}

	rendered, unresolved := render.Substitute(string(templateText), flat)
	if len(unresolved) > 0 {
		slog.Warn("Unresolved placeholders remain in rendered page",
			"client", client, "count", len(unresolved))
		for _, token := range unresolved {
			slog.Warn("  Unresolved placeholder", "token", token)
		}
	}

	outDir := g.cfg.ClientOutputDir(client)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, errors.OutputError("create output directory", err)
	}
	outputPath := g.cfg.OutputPagePath(client)
	if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
		return nil, errors.OutputError("write page", err)
	}
	slog.Info("Page written", "client", client, "path", outputPath)

	result := &Result{
		Client:     client,
		RunID:      uuid.NewString(),
		OutputPath: outputPath,
		Unresolved: unresolved,
		PreviewURL: g.cfg.PreviewURL(client),
		PagesURL:   g.cfg.PagesURL(client),
	}

	if err := g.copyAudio(ctx, client, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Generator) copyAudio(ctx context.Context, client string, result *Result) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	src := g.cfg.AudioSourceDir(client)
	dst := g.cfg.AudioDestDir(client)

	count, err := assets.MirrorAudio(src, dst, g.cfg.AudioExtension)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No audio directory for client; skipping copy",
				"client", client, "source", src)
			return nil
		}
		return errors.AudioCopyError(src, err)
	}

	result.AudioFound = true
	result.AudioFiles = count
	slog.Info("Audio copied", "client", client, "files", count, "destination", dst)
	return nil
}

func (g *Generator) recordHistory(ctx context.Context, result *Result, status string, start time.Time) {
	if g.store == nil {
		return
	}
	rec := history.Record{
		RunID:      result.RunID,
		Client:     result.Client,
		OutputPath: result.OutputPath,
		Unresolved: len(result.Unresolved),
		AudioFiles: result.AudioFiles,
		Duration:   result.Duration,
		Status:     status,
		StartedAt:  start,
	}
	if err := g.store.Append(ctx, rec); err != nil {
		slog.Warn("Failed to record run history", "client", result.Client, "error", err)
	}
}

// recordFailure appends a failed-run record so history shows aborted runs,
// not only the ones that produced a page.
func (g *Generator) recordFailure(ctx context.Context, rawSlug string, start time.Time) {
	if g.store == nil {
		return
	}
	client := rawSlug
	if normalized, err := slug.Normalize(rawSlug); err == nil {
		client = normalized
	}
	rec := history.Record{
		RunID:     uuid.NewString(),
		Client:    client,
		Duration:  time.Since(start),
		Status:    metrics.OutcomeFailed,
		StartedAt: start,
	}
	if err := g.store.Append(ctx, rec); err != nil {
		slog.Warn("Failed to record run history", "client", client, "error", err)
	}
}
