package gitx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	ctx := context.Background()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "dev@example.com"},
		{"config", "user.name", "Dev"},
		{"config", "commit.gpgsign", "false"},
	} {
		_, err := Git(ctx, dir, args...)
		require.NoError(t, err)
	}
	return dir
}

func TestStagedDiffAndCommit(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()
	repo := NewRepo(dir)

	diff, err := repo.StagedDiff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", diff)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.go"), []byte("package login\n"), 0o644))
	_, err = Git(ctx, dir, "add", "login.go")
	require.NoError(t, err)

	diff, err = repo.StagedDiff(ctx)
	require.NoError(t, err)
	assert.Contains(t, diff, "+package login")

	require.NoError(t, repo.Commit(ctx, "修复登录失败问题"))

	subject, err := Git(ctx, dir, "log", "-1", "--pretty=format:%s")
	require.NoError(t, err)
	assert.Equal(t, "修复登录失败问题", subject)

	diff, err = repo.StagedDiff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestCommitRejectsBlankMessage(t *testing.T) {
	err := NewRepo(t.TempDir()).Commit(context.Background(), "  \n")
	assert.Error(t, err)
}

func TestStagedDiffOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := NewRepo(t.TempDir()).StagedDiff(context.Background())
	assert.Error(t, err)
}

func TestResolveRepoRoot(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := ResolveRepoRoot(sub)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRepoRootNotARepo(t *testing.T) {
	_, err := ResolveRepoRoot(t.TempDir())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not inside a git repository"))
}

func TestResolveRepoRootMissingPath(t *testing.T) {
	_, err := ResolveRepoRoot(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
