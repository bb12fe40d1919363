// pkg/filesystem/filesystem_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (temp dir), afero MemMapFs
// PURPOSE: Test both types.FS implementations behave the same for matrix operations

package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	require.NoError(t, fs.WriteFile(testFile, []byte("hello world"), 0644))

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS_Symlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.MkdirAll(target, 0755))

	require.NoError(t, fs.Symlink(target, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	resolvedLink, err := fs.EvalSymlinks(link)
	require.NoError(t, err)
	resolvedTarget, err := fs.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, resolvedTarget, resolvedLink)
}

func TestAferoOsFs_Symlinks(t *testing.T) {
	fs := NewAferoFS(afero.NewOsFs())
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.MkdirAll(target, 0755))

	require.NoError(t, fs.Symlink(target, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestMemory_NoSymlinkSupport(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/ws/target", 0755))

	err := fs.Symlink("/ws/target", "/ws/link")
	require.Error(t, err)
	assert.True(t, errors.Is(err, afero.ErrNoSymlink))

	_, err = fs.Readlink("/ws/target")
	assert.Error(t, err)

	resolved, err := fs.EvalSymlinks("/ws/target/")
	require.NoError(t, err)
	assert.Equal(t, "/ws/target", resolved)

	_, err = fs.EvalSymlinks("/ws/missing")
	assert.True(t, os.IsNotExist(err))
}

func TestMemory_ReadFileOnDirectory(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/ws", 0755))

	_, err := fs.ReadFile("/ws")
	assert.Error(t, err)
}
