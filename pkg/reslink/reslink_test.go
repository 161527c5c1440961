package reslink

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// creating symlinks on Windows needs developer mode or admin rights
func skipWithoutSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink privileges are not guaranteed on Windows")
	}
}

func setupRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "test", "res"), 0o770))
	require.NoError(t, os.WriteFile(filepath.Join(root, "test", "res", "a.vert.glsl"), []byte("void main() {}\n"), 0o660))
	return root
}

func TestPaths(t *testing.T) {
	link := New("/project")
	assert.Equal(t, filepath.Join("/project", "build", "source", "phonon", "res"), link.TargetPath())

	link.Target = "/elsewhere/res"
	assert.Equal(t, filepath.Clean("/elsewhere/res"), link.TargetPath())
}

func TestCreate(t *testing.T) {
	skipWithoutSymlinks(t)

	root := setupRoot(t)
	link := New(root)

	created, err := link.Create()
	require.NoError(t, err)
	assert.True(t, created)

	dest, err := os.Readlink(link.TargetPath())
	require.NoError(t, err)
	source, err := link.SourcePath()
	require.NoError(t, err)
	assert.Equal(t, source, dest)

	// resources are reachable through the link
	data, err := os.ReadFile(filepath.Join(link.TargetPath(), "a.vert.glsl"))
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", string(data))
}

func TestCreateIsIdempotent(t *testing.T) {
	skipWithoutSymlinks(t)

	root := setupRoot(t)
	link := New(root)

	created, err := link.Create()
	require.NoError(t, err)
	require.True(t, created)

	before, err := os.Lstat(link.TargetPath())
	require.NoError(t, err)

	created, err = link.Create()
	require.NoError(t, err)
	assert.False(t, created)

	after, err := os.Lstat(link.TargetPath())
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.True(t, os.SameFile(before, after))
}

func TestCreateKeepsExistingDirectory(t *testing.T) {
	root := setupRoot(t)
	link := New(root)
	require.NoError(t, os.MkdirAll(link.TargetPath(), 0o770))

	created, err := link.Create()
	require.NoError(t, err)
	assert.False(t, created)

	info, err := os.Lstat(link.TargetPath())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
