package preview

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineteen58/pitchgen/internal/config"
	"github.com/nineteen58/pitchgen/internal/metrics"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestServerServesGeneratedPages(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default(base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "clients", "acme"), 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(base, "clients", "acme", "index.html"), []byte("<p>hi</p>"), 0o644))

	reg := prom.NewRegistry()
	metrics.NewPrometheusRecorder(reg)

	port := freePort(t)
	srv := NewServer(cfg, port, reg)
	require.NoError(t, srv.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	}()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/clients/acme/", port))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(body))

	health, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthz", port))
	require.NoError(t, err)
	_ = health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	m, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/metrics", port))
	require.NoError(t, err)
	_ = m.Body.Close()
	assert.Equal(t, http.StatusOK, m.StatusCode)
}

func TestWatcherClassify(t *testing.T) {
	base := "/work"
	cfg := config.Default(base)
	w := NewWatcher(cfg, func(context.Context, string) {})

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(base, "configs", "acme.yaml"), "acme"},
		{filepath.Join(base, "configs", "acme.json"), "acme"},
		{filepath.Join(base, "configs", "acme", "audio", "intro.mp3"), "acme"},
		{filepath.Join(base, "configs", "acme", "snippets", "pitch.md"), "acme"},
		{filepath.Join(base, "template", "TEMPLATE.html"), rebuildAll},
		{filepath.Join(base, "somewhere-else", "x"), rebuildAll},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.classify(tt.path), "path %s", tt.path)
	}
}

func TestShouldIgnoreEvent(t *testing.T) {
	assert.True(t, shouldIgnoreEvent("/x/.hidden"))
	assert.True(t, shouldIgnoreEvent("/x/file.swp"))
	assert.True(t, shouldIgnoreEvent("/x/file~"))
	assert.True(t, shouldIgnoreEvent("/x/#file#"))
	assert.True(t, shouldIgnoreEvent("/x/Thumbs.db"))
	assert.False(t, shouldIgnoreEvent("/x/acme.yaml"))
}

func TestWatcherDebouncesAndRebuilds(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default(base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "configs"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "template"), 0o750))

	rebuilt := make(chan string, 16)
	w := NewWatcher(cfg, func(_ context.Context, slug string) {
		rebuilt <- slug
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Give the watcher a moment to register directories.
	time.Sleep(200 * time.Millisecond)

	// Burst of writes to one client config collapses into one rebuild.
	path := filepath.Join(base, "configs", "acme.yaml")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("v: %d\n", i)), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case slug := <-rebuilt:
		assert.Equal(t, "acme", slug)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a rebuild for acme")
	}

	// Debounce: the burst produced exactly one request.
	select {
	case slug := <-rebuilt:
		t.Fatalf("unexpected extra rebuild for %q", slug)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestSchedulerRunsJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{}, 4)
	require.NoError(t, StartScheduler(ctx, 50*time.Millisecond, func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job never ran")
	}
}
