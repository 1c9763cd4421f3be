package gitx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ResolveRepoRoot finds the top of the worktree containing repoArg, or the
// working directory when repoArg is empty.
func ResolveRepoRoot(repoArg string) (string, error) {
	start := strings.TrimSpace(repoArg)
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = cwd
	}

	p, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(p, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("not inside a git repository (%s): %w. Use --repo /path/to/repo", p, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}
