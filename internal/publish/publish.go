// Package publish stages and commits a client's generated output in the
// enclosing git repository, the step that makes the page live once the
// operator pushes to the hosting remote.
package publish

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/nineteen58/pitchgen/internal/errors"
)

// ErrNothingToPublish is wrapped into the returned error when the client's
// output has no uncommitted changes.
var ErrNothingToPublish = fmt.Errorf("nothing to publish")

// Result reports a completed publish.
type Result struct {
	CommitHash string
	Staged     int // files staged in this commit
}

// Publish stages everything under dir (absolute path inside a git worktree)
// and commits it with the given message. It does not push; the remote
// hosting URL is only reported to the operator.
func Publish(dir, message string) (*Result, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.PublishError(fmt.Errorf("open repository: %w", err))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.PublishError(err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, errors.PublishError(fmt.Errorf("output directory %s is outside the repository", dir))
	}
	rel = filepath.ToSlash(rel)

	if err := wt.AddWithOptions(&git.AddOptions{Path: rel}); err != nil {
		return nil, errors.PublishError(fmt.Errorf("stage %s: %w", rel, err))
	}

	status, err := wt.Status()
	if err != nil {
		return nil, errors.PublishError(err)
	}
	staged := 0
	for path, st := range status {
		if strings.HasPrefix(path, rel+"/") || path == rel {
			if st.Staging != git.Unmodified && st.Staging != git.Untracked {
				staged++
			}
		}
	}
	if staged == 0 {
		return nil, errors.PublishError(fmt.Errorf("%w: %s", ErrNothingToPublish, rel))
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: commitAuthor(repo)})
	if err != nil {
		return nil, errors.PublishError(fmt.Errorf("commit: %w", err))
	}

	return &Result{CommitHash: hash.String(), Staged: staged}, nil
}

// commitAuthor uses the repository's configured identity when present and
// falls back to a tool identity so publish works on bare checkouts.
func commitAuthor(repo *git.Repository) *object.Signature {
	sig := &object.Signature{
		Name:  "pitchgen",
		Email: "pitchgen@localhost",
		When:  time.Now(),
	}
	cfg, err := repo.ConfigScoped(gitconfig.SystemScope)
	if err == nil && cfg.User.Name != "" {
		sig.Name = cfg.User.Name
		if cfg.User.Email != "" {
			sig.Email = cfg.User.Email
		}
	}
	return sig
}
