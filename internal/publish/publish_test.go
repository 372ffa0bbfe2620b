package publish

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestPublishCommitsClientOutput(t *testing.T) {
	base := initRepo(t)
	clientDir := filepath.Join(base, "clients", "acme")
	require.NoError(t, os.MkdirAll(filepath.Join(clientDir, "audio"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(clientDir, "index.html"), []byte("<p>hi</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(clientDir, "audio", "intro.mp3"), []byte("x"), 0o644))

	result, err := Publish(clientDir, "Publish pitch page for acme")
	require.NoError(t, err)
	assert.NotEmpty(t, result.CommitHash)
	assert.Equal(t, 2, result.Staged)

	repo, err := git.PlainOpen(base)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, result.CommitHash, head.Hash().String())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Publish pitch page for acme", commit.Message)
}

func TestPublishNothingToPublish(t *testing.T) {
	base := initRepo(t)
	clientDir := filepath.Join(base, "clients", "acme")
	require.NoError(t, os.MkdirAll(clientDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(clientDir, "index.html"), []byte("v1"), 0o644))

	_, err := Publish(clientDir, "first")
	require.NoError(t, err)

	// No changes since the first commit.
	_, err = Publish(clientDir, "second")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNothingToPublish))
}

func TestPublishOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "clients", "acme"), 0o750))

	_, err := Publish(filepath.Join(dir, "clients", "acme"), "msg")
	assert.Error(t, err)
}
