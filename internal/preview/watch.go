package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nineteen58/pitchgen/internal/config"
)

const debounceWindow = 300 * time.Millisecond

// rebuildAll is the sentinel request meaning "every client" (template or
// unknown change).
const rebuildAll = ""

// Watcher regenerates clients when their configuration, their assets, or
// the shared template change on disk. Rebuild requests are debounced and
// serialized through a single worker so two regenerations never interleave.
type Watcher struct {
	cfg     *config.Config
	rebuild func(ctx context.Context, slug string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	kick    chan struct{}
}

// NewWatcher creates a watcher. rebuild is called with a client slug, or
// with the empty string to regenerate every configured client.
func NewWatcher(cfg *config.Config, rebuild func(ctx context.Context, slug string)) *Watcher {
	return &Watcher{
		cfg:     cfg,
		rebuild: rebuild,
		pending: make(map[string]struct{}),
		kick:    make(chan struct{}, 1),
	}
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	configsDir := filepath.Join(w.cfg.BaseDir, w.cfg.ConfigsDir)
	if err := addDirsRecursive(fsw, configsDir); err != nil {
		return err
	}
	templateDir := filepath.Dir(w.cfg.TemplateFile())
	if err := fsw.Add(templateDir); err != nil {
		slog.Warn("Cannot watch template directory", "dir", templateDir, "error", err)
	}

	go w.worker(ctx)

	slog.Info("Watching for changes", "configs", configsDir, "template", w.cfg.TemplateFile())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	// New subdirectories (e.g. a fresh configs/<slug>/audio) need watching too.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name)
		}
	}

	slug := w.classify(ev.Name)
	slog.Debug("Change detected", "path", ev.Name, "op", ev.Op.String(), "client", slug)
	w.enqueue(slug)
}

// classify maps a changed path to the client it belongs to, or rebuildAll
// for template and unattributable changes.
func (w *Watcher) classify(path string) string {
	templateDir := filepath.Dir(w.cfg.TemplateFile())
	if within(templateDir, path) {
		return rebuildAll
	}

	configsDir := filepath.Join(w.cfg.BaseDir, w.cfg.ConfigsDir)
	rel, err := filepath.Rel(configsDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return rebuildAll
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) == 1 {
		// A config file directly in configs/: strip the extension.
		ext := filepath.Ext(parts[0])
		return strings.TrimSuffix(parts[0], ext)
	}
	// configs/<slug>/audio/..., configs/<slug>/snippets/...
	return parts[0]
}

func (w *Watcher) enqueue(slug string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[slug] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, func() {
		select {
		case w.kick <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.kick:
			w.mu.Lock()
			batch := w.pending
			w.pending = make(map[string]struct{})
			w.mu.Unlock()

			if _, all := batch[rebuildAll]; all {
				w.rebuild(ctx, rebuildAll)
				continue
			}
			for slug := range batch {
				w.rebuild(ctx, slug)
			}
		}
	}
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && !strings.HasPrefix(rel, "..")
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger regeneration (editor temp and swap files, OS metadata).
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
