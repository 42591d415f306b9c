// Package gitctx answers the few git questions the CLI asks: where the
// enclosing work tree starts and what HEAD points at.
package gitctx

import (
	"errors"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// ErrNotRepo is returned when no enclosing git work tree exists.
var ErrNotRepo = errors.New("not inside a git work tree")

// Info is a minimal view of the repository state.
type Info struct {
	Root   string `json:"root"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
	Dirty  bool   `json:"dirty"`
}

func open(start string) (*git.Repository, string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, "", err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, "", ErrNotRepo
		}
		return nil, "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to anchor content paths on.
		return nil, "", ErrNotRepo
	}
	return repo, wt.Filesystem.Root(), nil
}

// RepoRoot walks up from start to the top of the enclosing work tree.
func RepoRoot(start string) (string, error) {
	_, root, err := open(start)
	return root, err
}

// Describe reports branch, HEAD commit and whether the work tree has
// uncommitted changes. A repository without commits reports only Root.
func Describe(start string) (*Info, error) {
	repo, root, err := open(start)
	if err != nil {
		return nil, err
	}
	info := &Info{Root: root}
	head, err := repo.Head()
	if err != nil {
		return info, nil
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	info.Commit = head.Hash().String()

	wt, err := repo.Worktree()
	if err != nil {
		return info, nil
	}
	st, err := wt.Status()
	if err != nil {
		return info, nil
	}
	info.Dirty = !st.IsClean()
	return info, nil
}

// ShortCommit trims a commit hash for display.
func (i *Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}
