package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineteen58/pitchgen/internal/config"
	pgerrors "github.com/nineteen58/pitchgen/internal/errors"
	"github.com/nineteen58/pitchgen/internal/history"
)

// newFixture lays out a base directory with a template and one client
// config, mirroring the conventional repo layout.
func newFixture(t *testing.T, template string, clientYAML string) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default(base)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "template"), 0o750))
	require.NoError(t, os.WriteFile(cfg.TemplateFile(), []byte(template), 0o644))

	if clientYAML != "" {
		require.NoError(t, os.MkdirAll(filepath.Join(base, "configs"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(base, "configs", "acme.yaml"), []byte(clientYAML), 0o644))
	}
	return cfg
}

func TestRunRendersPage(t *testing.T) {
	cfg := newFixture(t, "<p>{{a.b}}</p>", "a:\n  b: hello\n")
	gen := New(cfg)

	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)

	assert.Empty(t, result.Unresolved)
	assert.Equal(t, cfg.OutputPagePath("acme"), result.OutputPath)
	assert.Equal(t, "http://localhost:8080/clients/acme/", result.PreviewURL)
	assert.Equal(t, "https://sebmcintosh.github.io/Pitch-Decks/clients/acme/", result.PagesURL)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", string(data))
}

func TestRunReportsUnresolved(t *testing.T) {
	cfg := newFixture(t, "{{x}} {{y}}", "x: \"1\"\n")
	gen := New(cfg)

	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, []string{"{{y}}"}, result.Unresolved)
	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "1 {{y}}", string(data))
}

func TestRunMissingClientConfig(t *testing.T) {
	cfg := newFixture(t, "{{a}}", "")
	gen := New(cfg)

	_, err := gen.Run(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, pgerrors.IsCategory(err, pgerrors.CategoryConfig))

	// Nothing written.
	assert.NoDirExists(t, cfg.ClientOutputDir("nope"))
}

func TestRunMissingTemplate(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default(base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "configs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(base, "configs", "acme.yaml"), []byte("a: b\n"), 0o644))
	gen := New(cfg)

	_, err := gen.Run(context.Background(), "acme")
	require.Error(t, err)
	assert.True(t, pgerrors.IsCategory(err, pgerrors.CategoryTemplate))
	assert.NoDirExists(t, cfg.ClientOutputDir("acme"))
}

func TestRunNormalizesSlug(t *testing.T) {
	cfg := newFixture(t, "{{a.b}}", "a:\n  b: hi\n")
	gen := New(cfg)

	result, err := gen.Run(context.Background(), "  ACME ")
	require.NoError(t, err)
	assert.Equal(t, "acme", result.Client)
}

func TestRunCopiesAndReplacesAudio(t *testing.T) {
	cfg := newFixture(t, "page", "a: b\n")
	audioSrc := cfg.AudioSourceDir("acme")
	require.NoError(t, os.MkdirAll(audioSrc, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(audioSrc, "one.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(audioSrc, "two.mp3"), []byte("y"), 0o644))

	gen := New(cfg)
	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, result.AudioFound)
	assert.Equal(t, 2, result.AudioFiles)

	// Second run with different audio content replaces the directory
	// wholesale; no stale files remain.
	require.NoError(t, os.Remove(filepath.Join(audioSrc, "two.mp3")))
	require.NoError(t, os.WriteFile(filepath.Join(audioSrc, "three.mp3"), []byte("z"), 0o644))

	result, err = gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, result.AudioFiles)
	assert.NoFileExists(t, filepath.Join(cfg.AudioDestDir("acme"), "two.mp3"))
	assert.FileExists(t, filepath.Join(cfg.AudioDestDir("acme"), "three.mp3"))
}

func TestRunWithoutAudioIsNonFatal(t *testing.T) {
	cfg := newFixture(t, "page", "a: b\n")
	gen := New(cfg)

	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	assert.False(t, result.AudioFound)
	assert.Zero(t, result.AudioFiles)
}

func TestRunOverwritesPreviousPage(t *testing.T) {
	cfg := newFixture(t, "{{greeting}}", "greeting: first\n")
	gen := New(cfg)

	_, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)

	// Updated config overwrites the page in place.
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.BaseDir, "configs", "acme.yaml"), []byte("greeting: second\n"), 0o644))
	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestRunMergesSnippets(t *testing.T) {
	cfg := newFixture(t, "<div>{{snippets.intro}}</div>", "a: b\n")
	snipDir := cfg.SnippetsDir("acme")
	require.NoError(t, os.MkdirAll(snipDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(snipDir, "intro.md"), []byte("**bold**"), 0o644))

	gen := New(cfg)
	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	assert.Empty(t, result.Unresolved)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<strong>bold</strong>")
}

func TestRunRecordsHistory(t *testing.T) {
	cfg := newFixture(t, "{{x}} {{y}}", "x: \"1\"\n")
	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	gen := New(cfg, WithHistory(store))
	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)

	records, err := store.Recent(context.Background(), "acme", 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.RunID, records[0].RunID)
	assert.Equal(t, 1, records[0].Unresolved)
	assert.Equal(t, "warning", records[0].Status)
}

func TestRunRecordsFailedRuns(t *testing.T) {
	cfg := newFixture(t, "{{a}}", "")
	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	gen := New(cfg, WithHistory(store))
	_, err = gen.Run(context.Background(), "nope")
	require.Error(t, err)

	records, err := store.Recent(context.Background(), "nope", 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "failed", records[0].Status)
	assert.Empty(t, records[0].OutputPath)
}

func TestRunResolvesBraceAdjacentToken(t *testing.T) {
	cfg := newFixture(t, `{"title": "{{{name}}}"}`, "name: acme\n")
	gen := New(cfg)

	result, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	assert.Empty(t, result.Unresolved)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "{acme}"}`, string(data))
}

func TestRunDeterministicOutput(t *testing.T) {
	cfg := newFixture(t, "<p>{{a}}-{{b}}-{{a}}</p>", "a: x\nb: y\n")
	gen := New(cfg)

	first, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	firstData, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second, err := gen.Run(context.Background(), "acme")
	require.NoError(t, err)
	secondData, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, firstData, secondData)
}
