// pkg/cloner/cloner_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem, FakeRunner
// PURPOSE: Test URL naming, clone caching, collision fallback and failures

package cloner_test

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/arthur-debert/matrix/pkg/cloner"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/executil"
	"github.com/arthur-debert/matrix/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoURL = "https://github.com/user/my-repo.git"

func newCloner(t *testing.T, layout string) (*testutil.TestEnvironment, *cloner.Cloner) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	c := cloner.New(cloner.Options{
		Root:    env.Paths.RepositoriesDir(),
		Timeout: time.Minute,
		Layout:  layout,
	}, env.FS, env.Runner)
	return env, c
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/user/my-repo.git", "my-repo"},
		{"https://github.com/user/my-repo", "my-repo"},
		{"https://github.com/user/my-repo/", "my-repo"},
		{"git@github.com:user/my-repo.git", "my-repo"},
		{"git@github.com:my-repo.git", "my-repo"},
		{"ssh://git@gitlab.com/group/sub/tool.git", "tool"},
		{"", cloner.FallbackName},
		{"no-separator", cloner.FallbackName},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, cloner.ExtractName(tt.url))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "github.com/user/my-repo", cloner.NormalizeURL("https://GitHub.com/user/my-repo.git"))
	assert.Equal(t, "github.com/user/my-repo", cloner.NormalizeURL("git@github.com:user/my-repo.git"))
	assert.Equal(t, "github.com/user/my-repo", cloner.NormalizeURL("ssh://git@github.com/user/my-repo/"))
	assert.Equal(t, "/srv/git/tool", cloner.NormalizeURL("file:///srv/git/tool.git"))

	assert.True(t, cloner.SameRepository(repoURL, "git@github.com:user/my-repo"))
	assert.False(t, cloner.SameRepository(repoURL, "https://github.com/other/my-repo.git"))
	assert.Equal(t, cloner.URLHash(repoURL), cloner.URLHash("git@github.com:user/my-repo.git"))
}

func TestDirName(t *testing.T) {
	_, hashed := newCloner(t, cloner.LayoutHashed)
	name := hashed.DirName(repoURL, "display-only")
	assert.Regexp(t, regexp.MustCompile(`^my-repo-[0-9a-f]{12}$`), name)
	assert.Equal(t, name, hashed.DirName("git@github.com:user/my-repo.git", ""))
	assert.NotEqual(t, name, hashed.DirName("https://github.com/other/my-repo.git", ""))

	_, named := newCloner(t, cloner.LayoutNamed)
	assert.Equal(t, "custom", named.DirName(repoURL, "custom"))
	assert.Equal(t, "my-repo", named.DirName(repoURL, ""))
	assert.Equal(t, "org_custom", named.DirName(repoURL, "org/custom"))
}

func TestClone_CachesByURL(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutHashed)
	ctx := context.Background()

	first, err := c.Clone(ctx, repoURL, "")
	require.NoError(t, err)
	second, err := c.Clone(ctx, repoURL, "another-name")
	require.NoError(t, err)
	third, err := c.Clone(ctx, "git@github.com:user/my-repo.git", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Equal(t, env.Paths.RepositoriesDir(), filepath.Dir(first))
	assert.Equal(t, 1, env.Runner.CallCount("clone"))
	assert.True(t, c.IsRepository(first))

	origin, ok := c.OriginURL(first)
	require.True(t, ok)
	assert.Equal(t, repoURL, origin)
}

func TestClone_Invocation(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutNamed)

	path, err := c.Clone(context.Background(), repoURL, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.Paths.RepositoriesDir(), "my-repo"), path)

	var clone executil.Command
	for _, cmd := range env.Runner.Calls() {
		if cmd.Args[0] == "clone" {
			clone = cmd
		}
	}
	assert.Equal(t, "git", clone.Name)
	assert.Equal(t, []string{"clone", repoURL, path}, clone.Args)
	assert.Equal(t, time.Minute, clone.Timeout)
}

func TestClone_NamedLayoutForeignDirectory(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutNamed)
	root := env.Paths.RepositoriesDir()
	testutil.CreateFileTree(t, env.FS, filepath.Join(root, "my-repo"), testutil.FileTree{"notes.txt": "not a clone"})

	path, err := c.Clone(context.Background(), repoURL, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "my-repo-"+cloner.URLHash(repoURL)[:8]), path)
	testutil.AssertFileContains(t, env.FS, filepath.Join(root, "my-repo", "notes.txt"), "not a clone")

	// The disambiguated directory is now the cache for this URL.
	again, err := c.Clone(context.Background(), repoURL, "")
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, env.Runner.CallCount("clone"))
}

func TestClone_NamedLayoutOtherRepository(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutNamed)
	ctx := context.Background()
	otherURL := "https://github.com/someone-else/my-repo.git"

	first, err := c.Clone(ctx, repoURL, "")
	require.NoError(t, err)
	second, err := c.Clone(ctx, otherURL, "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "a clone of another repository is not a cache hit")
	assert.Equal(t, 2, env.Runner.CallCount("clone"))
}

func TestClone_HashedLayoutForeignDirectory(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutHashed)
	root := env.Paths.RepositoriesDir()
	testutil.CreateFileTree(t, env.FS, filepath.Join(root, c.DirName(repoURL, "")), testutil.FileTree{"x": "y"})

	path, err := c.Clone(context.Background(), repoURL, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "my-repo-"+cloner.URLHash(repoURL)), path)
}

func TestClone_BothNamesTaken(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutNamed)
	root := env.Paths.RepositoriesDir()
	testutil.CreateFileTree(t, env.FS, filepath.Join(root, "my-repo"), testutil.FileTree{"a": "1"})
	testutil.CreateFileTree(t, env.FS, filepath.Join(root, "my-repo-"+cloner.URLHash(repoURL)[:8]), testutil.FileTree{"b": "2"})

	_, err := c.Clone(context.Background(), repoURL, "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrClone))
	assert.Equal(t, 0, env.Runner.CallCount("clone"))
}

func TestClone_ToolMissing(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutHashed)
	env.Runner.Missing["git"] = true

	_, err := c.Clone(context.Background(), repoURL, "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.True(t, errors.IsCloneError(err))
	assert.Empty(t, env.Runner.Calls(), "no clone is attempted")
}

func TestClone_ProbeFails(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutHashed)
	env.Runner.Responses["--version"] = testutil.FakeResponse{Result: executil.Result{ExitCode: 1}}

	_, err := c.Clone(context.Background(), repoURL, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.Equal(t, 0, env.Runner.CallCount("clone"))
}

func TestClone_Timeout(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutHashed)
	env.Runner.Responses["clone"] = testutil.FakeResponse{
		Result: executil.Result{ExitCode: -1},
		Err:    executil.ErrTimeout,
	}
	// Simulate a clone that got as far as creating its directory.
	env.Runner.OnRun = func(_ context.Context, cmd executil.Command) {
		if cmd.Args[0] == "clone" {
			_ = env.FS.MkdirAll(filepath.Join(cmd.Args[2], ".git"), 0755)
		}
	}

	_, err := c.Clone(context.Background(), repoURL, "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneTimeout))
	assert.True(t, errors.IsCloneError(err))
	testutil.AssertNotExists(t, env.FS, filepath.Join(env.Paths.RepositoriesDir(), c.DirName(repoURL, "")))
}

func TestClone_NonZeroExit(t *testing.T) {
	env, c := newCloner(t, cloner.LayoutHashed)
	env.Runner.FailClone("fatal: repository 'https://github.com/user/nonexistent.git/' not found\n")

	_, err := c.Clone(context.Background(), "https://github.com/user/nonexistent.git", "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrClone))
	assert.Contains(t, err.Error(), "repository 'https://github.com/user/nonexistent.git/' not found")
}

func TestClone_EmptyURL(t *testing.T) {
	_, c := newCloner(t, cloner.LayoutHashed)

	_, err := c.Clone(context.Background(), "  ", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrClone))
}
