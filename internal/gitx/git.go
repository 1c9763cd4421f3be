package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

func Git(ctx context.Context, repoRoot string, args ...string) (string, error) {
	log.Debug().Strs("args", args).Str("dir", repoRoot).Msg("git")
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoRoot}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %v failed: %w\n%s", args, err, stderr.String())
	}
	return stdout.String(), nil
}

// Repo runs git commands against one worktree.
type Repo struct {
	root string
}

func NewRepo(root string) *Repo {
	return &Repo{root: root}
}

// StagedDiff returns the index diff exactly as git prints it. An empty
// string means nothing is staged.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	return Git(ctx, r.root, "diff", "--cached")
}

// Commit records the index with message as given.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	_, err := Git(ctx, r.root, "commit", "-m", message)
	return err
}
