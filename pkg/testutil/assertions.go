package testutil

import (
	"io/fs"
	"os"
	"testing"

	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink checks that link is a symlink whose target is target.
func AssertSymlink(t *testing.T, fsys types.FS, link, target string) {
	t.Helper()

	info, err := fsys.Lstat(link)
	require.NoError(t, err, "expected symlink at %s", link)
	require.True(t, info.Mode()&fs.ModeSymlink != 0, "%s is not a symlink", link)

	got, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got, "symlink %s points elsewhere", link)
}

// AssertNotExists checks that nothing, not even a dangling symlink, is at path.
func AssertNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	_, err := fsys.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent, got err=%v", path, err)
}

// AssertDir checks that path is a directory.
func AssertDir(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	info, err := fsys.Stat(path)
	require.NoError(t, err, "expected directory at %s", path)
	assert.True(t, info.IsDir(), "%s is not a directory", path)
}

// AssertFileContains checks that the file at path contains substr.
func AssertFileContains(t *testing.T, fsys types.FS, path, substr string) {
	t.Helper()

	data, err := fsys.ReadFile(path)
	require.NoError(t, err, "expected file at %s", path)
	assert.Contains(t, string(data), substr)
}
