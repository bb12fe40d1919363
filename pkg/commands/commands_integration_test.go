// pkg/commands/commands_integration_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (symlinks), FakeRunner for git
// PURPOSE: Test command flows end to end: create, add, link, reconcile, delete

package commands_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/matrix/pkg/commands"
	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/config"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/testutil"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remoteURL = "https://github.com/user/remote-repo.git"

func newService(t *testing.T) (*testutil.TestEnvironment, *commands.Service) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	cfg := &config.Config{
		Root: env.Root,
		Clone: config.CloneConfig{
			Tool:         "git",
			Timeout:      time.Minute,
			ProbeTimeout: time.Second,
			Layout:       config.LayoutHashed,
		},
		Manifest: config.ManifestConfig{Filename: "MATRIX.md"},
	}
	d, err := deps.New(cfg, env.FS, env.Runner)
	require.NoError(t, err)
	return env, commands.NewService(d)
}

func localDir(t *testing.T, env *testutil.TestEnvironment, name string) string {
	t.Helper()
	dir := filepath.Join(env.SourcesDir, name)
	testutil.CreateFileTree(t, env.FS, dir, testutil.FileTree{"main.go": "package main\n"})
	return dir
}

func TestCreateMatrix_Empty(t *testing.T) {
	env, svc := newService(t)

	res, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "My Project"})
	require.NoError(t, err)

	m := res.Matrix
	assert.Equal(t, filepath.Join(env.Root, "matrices"), filepath.Dir(m.WorkspacePath))
	assert.Contains(t, filepath.Base(m.WorkspacePath), "my-project-")
	testutil.AssertFileContains(t, env.FS, filepath.Join(m.WorkspacePath, "MATRIX.md"), "*No sources added yet.*")

	listed, err := svc.ListMatrices()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, m.ID, listed[0].ID)
}

func TestCreateMatrix_RequiresName(t *testing.T) {
	_, svc := newService(t)

	_, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "  "})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAddLocalSource(t *testing.T) {
	env, svc := newService(t)
	dir := localDir(t, env, "api")

	src, err := svc.AddLocalSource(commands.AddLocalOptions{Path: dir})
	require.NoError(t, err)
	assert.Equal(t, "api", src.Name)
	assert.Equal(t, types.SourceTypeLocal, src.SourceType)

	_, err = svc.AddLocalSource(commands.AddLocalOptions{Path: filepath.Join(env.SourcesDir, "missing")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestAddRemoteSource(t *testing.T) {
	env, svc := newService(t)

	src, err := svc.AddRemoteSource(context.Background(), commands.AddRemoteOptions{URL: remoteURL})
	require.NoError(t, err)
	assert.Equal(t, "remote-repo", src.Name)
	assert.Equal(t, types.SourceTypeRemote, src.SourceType)
	assert.Equal(t, env.Paths.RepositoriesDir(), filepath.Dir(src.Path))

	again, err := svc.AddRemoteSource(context.Background(), commands.AddRemoteOptions{URL: remoteURL, Name: "alias"})
	require.NoError(t, err)
	assert.Equal(t, src.Path, again.Path, "shared clone cache")
	assert.Equal(t, 1, env.Runner.CallCount("clone"))
}

func TestLinkAndUnlink(t *testing.T) {
	env, svc := newService(t)
	src, err := svc.AddLocalSource(commands.AddLocalOptions{Path: localDir(t, env, "api")})
	require.NoError(t, err)
	created, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo"})
	require.NoError(t, err)
	ws := created.Matrix.WorkspacePath

	added, err := svc.Link("Demo", "api")
	require.NoError(t, err)
	assert.True(t, added.Changed)
	assert.Empty(t, added.Warnings)
	testutil.AssertSymlink(t, env.FS, filepath.Join(ws, "api"), src.Path)
	testutil.AssertFileContains(t, env.FS, filepath.Join(ws, "MATRIX.md"), "### api")

	again, err := svc.Link("Demo", src.ID)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, []string{src.ID}, again.Matrix.SourceIDs)

	removed, err := svc.Unlink("Demo", "api")
	require.NoError(t, err)
	assert.True(t, removed.Changed)
	assert.Empty(t, removed.Matrix.SourceIDs)
	testutil.AssertNotExists(t, env.FS, filepath.Join(ws, "api"))
	testutil.AssertDir(t, env.FS, src.Path)
	testutil.AssertFileContains(t, env.FS, filepath.Join(ws, "MATRIX.md"), "*No sources added yet.*")
}

func TestReconcile_PersistsMovedSource(t *testing.T) {
	env, svc := newService(t)
	ctx := context.Background()

	// A remote source whose record points outside the cache, as an older
	// layout would have left it.
	legacy := env.RemoteSource("remote-repo", remoteURL)
	require.NoError(t, svc.Deps().Store.SaveSource(legacy))
	created, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo", SourceRefs: []string{legacy.ID}})
	require.NoError(t, err)
	require.Empty(t, created.Warnings)

	env.RemovePath(legacy.Path)

	res, err := svc.Reconcile(ctx, "Demo")
	require.NoError(t, err)
	require.Len(t, res.Report.SourcesReconciled, 1)
	moved := res.Report.SourcesReconciled[0]
	assert.Equal(t, types.SourceStatusRepaired, moved.Status)
	require.NotEmpty(t, moved.Path)

	stored, err := svc.Deps().Store.GetSource(legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, moved.Path, stored.Path)
	testutil.AssertFileContains(t, env.FS, filepath.Join(created.Matrix.WorkspacePath, "MATRIX.md"), moved.Path)

	second, err := svc.Reconcile(ctx, "Demo")
	require.NoError(t, err)
	assert.False(t, second.Report.HasRepairs())
}

func TestReconcile_OrphanAfterSourceRemoval(t *testing.T) {
	env, svc := newService(t)
	src, err := svc.AddLocalSource(commands.AddLocalOptions{Path: localDir(t, env, "api")})
	require.NoError(t, err)
	_, err = svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo", SourceRefs: []string{"api"}})
	require.NoError(t, err)

	_, err = svc.RemoveSource("api")
	require.NoError(t, err)

	results, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{src.ID}, results[0].Report.OrphanedSourceIDs)
	assert.Empty(t, results[0].Report.SourcesReconciled)
}

func TestDeleteMatrix_KeepsWorkspaceAndSources(t *testing.T) {
	env, svc := newService(t)
	src, err := svc.AddLocalSource(commands.AddLocalOptions{Path: localDir(t, env, "api")})
	require.NoError(t, err)
	created, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo", SourceRefs: []string{src.ID}})
	require.NoError(t, err)

	_, err = svc.DeleteMatrix("Demo")
	require.NoError(t, err)

	_, err = svc.GetMatrix("Demo")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	testutil.AssertDir(t, env.FS, created.Matrix.WorkspacePath)
	sources, err := svc.ListSources()
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}

func TestShowManifest(t *testing.T) {
	env, svc := newService(t)
	created, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo"})
	require.NoError(t, err)

	shown, err := svc.ShowManifest("Demo")
	require.NoError(t, err)
	assert.True(t, shown.OnDisk)
	assert.Contains(t, shown.Content, "# Demo")

	env.RemovePath(shown.Path)
	rendered, err := svc.ShowManifest(created.Matrix.ID)
	require.NoError(t, err)
	assert.False(t, rendered.OnDisk)
	assert.Equal(t, shown.Content, rendered.Content)
}

func TestRenameMatrix_KeepsWorkspacePath(t *testing.T) {
	env, svc := newService(t)
	src, err := svc.AddLocalSource(commands.AddLocalOptions{Path: localDir(t, env, "api")})
	require.NoError(t, err)
	created, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo", SourceRefs: []string{src.ID}})
	require.NoError(t, err)
	ws := created.Matrix.WorkspacePath

	renamed, err := svc.RenameMatrix("Demo", "  Platform Work ")
	require.NoError(t, err)
	assert.Equal(t, "Demo", renamed.PreviousName)
	assert.Equal(t, "Platform Work", renamed.Matrix.Name)
	assert.Equal(t, ws, renamed.Matrix.WorkspacePath)
	assert.Empty(t, renamed.Warnings)

	stored, err := svc.GetMatrix("Platform Work")
	require.NoError(t, err)
	assert.Equal(t, ws, stored.WorkspacePath)
	_, err = svc.GetMatrix("Demo")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	testutil.AssertFileContains(t, env.FS, filepath.Join(ws, "MATRIX.md"), "# Platform Work")
	testutil.AssertSymlink(t, env.FS, filepath.Join(ws, "api"), src.Path)

	res, err := svc.Reconcile(context.Background(), "Platform Work")
	require.NoError(t, err)
	assert.False(t, res.Report.HasRepairs())
	require.Len(t, res.Report.SourcesReconciled, 1)
	assert.Equal(t, types.SourceStatusOK, res.Report.SourcesReconciled[0].Status)
}

func TestRenameMatrix_RequiresName(t *testing.T) {
	_, svc := newService(t)
	_, err := svc.CreateMatrix(commands.CreateMatrixOptions{Name: "Demo"})
	require.NoError(t, err)

	_, err = svc.RenameMatrix("Demo", " ")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = svc.RenameMatrix("missing", "Other")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
