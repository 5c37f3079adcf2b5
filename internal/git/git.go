// Package git materializes revision snapshots for drift analysis. It
// wraps go-git so the tool never shells out to a git binary.
package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned when the given path holds no git repository.
var ErrNotRepository = errors.New("not a git repository")

// Snapshot is one revision's full tree: repository-relative path to file
// text. Binary blobs are skipped during materialization.
type Snapshot map[string]string

// Repo wraps a go-git repository for the read-only operations the
// analysis needs.
type Repo struct {
	repo *gogit.Repository
}

// Open opens the repository at path.
func Open(path string) (*Repo, error) {
	r, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}
	return &Repo{repo: r}, nil
}

// Wrap adopts an already-open go-git repository. Tests use it with
// in-memory storage.
func Wrap(r *gogit.Repository) *Repo {
	return &Repo{repo: r}
}

// ResolveRange turns the CLI's revision flags into a concrete old/new
// pair. Precedence: --from/--to beats --since beats --branch; with no
// flags the previous commit is compared against HEAD.
func ResolveRange(from, to, since, branch string) (string, string) {
	switch {
	case from != "":
		if to == "" {
			to = "HEAD"
		}
		return from, to
	case since != "":
		return since, "HEAD"
	case branch != "":
		return branch, "HEAD"
	default:
		return "HEAD~1", "HEAD"
	}
}

// Snapshot resolves a revision expression (SHA, branch, tag, HEAD~n) to a
// commit and materializes its complete tree. Files that look binary or
// fail to read are left out; a snapshot is best-effort per file, exact
// per commit.
func (r *Repo) Snapshot(ctx context.Context, rev string) (Snapshot, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree of %s: %w", hash, err)
	}

	snap := make(Snapshot)
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if bin, err := f.IsBinary(); err != nil || bin {
			return nil
		}
		content, err := f.Contents()
		if err != nil {
			return nil
		}
		snap[f.Name] = content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking tree of %s: %w", hash, err)
	}
	return snap, nil
}
