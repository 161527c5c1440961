package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o770))

	nested := filepath.Join(root, "test", "res")
	require.NoError(t, os.MkdirAll(nested, 0o770))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFindProjectRootGitFile(t *testing.T) {
	// worktrees and submodules use a .git file instead of a directory
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: elsewhere\n"), 0o660))

	found, err := FindProjectRoot(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(root), found)
}
