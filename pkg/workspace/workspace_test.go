// pkg/workspace/workspace_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test workspace creation, manifest rendering and self-healing updates

package workspace_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/filesystem"
	"github.com/arthur-debert/matrix/pkg/testutil"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/arthur-debert/matrix/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedMatrix(sourceIDs ...string) types.Matrix {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return types.Matrix{
		ID:            "5f0c1a2b-1111-4222-8333-444455556666",
		Name:          "Payments",
		SourceIDs:     sourceIDs,
		WorkspacePath: "/virtual/matrix/matrices/payments-5f0c1a2b",
		CreatedAt:     created,
		UpdatedAt:     created.Add(90 * time.Minute),
	}
}

func TestRenderManifest_Empty(t *testing.T) {
	out := workspace.RenderManifest(fixedMatrix(), nil)

	assert.True(t, strings.HasPrefix(out, "# Payments\n"))
	assert.Contains(t, out, "**Created**: 2024-01-15 10:30:00 UTC")
	assert.Contains(t, out, "**Last Updated**: 2024-01-15 12:00:00 UTC")
	assert.Contains(t, out, "**Matrix ID**: `5f0c1a2b-1111-4222-8333-444455556666`")
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "*No sources added yet.*")
	assert.Contains(t, out, "*Define relationships between sources here.*")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestRenderManifest_Sources(t *testing.T) {
	local := types.Source{ID: "id-local", Name: "api", Path: "/src/api", SourceType: types.SourceTypeLocal}
	remote := types.Source{
		ID:         "id-remote",
		Name:       "lib",
		Path:       "/repos/lib-abc",
		URL:        "https://github.com/org/lib.git",
		SourceType: types.SourceTypeRemote,
	}

	out := workspace.RenderManifest(fixedMatrix(local.ID, remote.ID), []types.Source{local, remote})

	assert.Contains(t, out, "### api\n- **Path**: `/src/api`\n- **Source ID**: `id-local`")
	assert.Contains(t, out, "### lib\n- **Path**: `/repos/lib-abc`\n- **URL**: https://github.com/org/lib.git\n- **Source ID**: `id-remote`")
	assert.Less(t, strings.Index(out, "### api"), strings.Index(out, "### lib"), "sources keep input order")
	assert.NotContains(t, out, "No sources added yet")
	assert.Contains(t, out, "*Document how these sources relate to each other:*")
	assert.Contains(t, out, "- Dependencies between repositories")
	assert.Contains(t, out, "- Communication patterns")
}

func TestRenderManifest_Deterministic(t *testing.T) {
	sources := []types.Source{{ID: "a", Name: "a", Path: "/a"}}
	assert.Equal(t,
		workspace.RenderManifest(fixedMatrix("a"), sources),
		workspace.RenderManifest(fixedMatrix("a"), sources))
}

func TestCreateWorkspace(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mgr := workspace.New(env.FS, "")
	m := fixedMatrix()

	assert.False(t, mgr.HasWorkspace(m))
	require.NoError(t, mgr.CreateWorkspace(m, nil))

	assert.True(t, mgr.HasWorkspace(m))
	assert.True(t, mgr.HasManifest(m))
	assert.Equal(t, filepath.Join(m.WorkspacePath, "MATRIX.md"), mgr.ManifestPath(m))
	testutil.AssertFileContains(t, env.FS, mgr.ManifestPath(m), "# Payments")

	// Idempotent
	require.NoError(t, mgr.CreateWorkspace(m, nil))
}

func TestUpdateManifest_Overwrites(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mgr := workspace.New(env.FS, "CONTEXT.md")
	m := fixedMatrix()
	require.NoError(t, mgr.CreateWorkspace(m, nil))

	src := types.Source{ID: "s1", Name: "docs", Path: "/src/docs"}
	m.SourceIDs = []string{src.ID}
	require.NoError(t, mgr.UpdateManifest(m, []types.Source{src}))

	testutil.AssertFileContains(t, env.FS, filepath.Join(m.WorkspacePath, "CONTEXT.md"), "### docs")
	data, err := env.FS.ReadFile(mgr.ManifestPath(m))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "No sources added yet")
}

func TestUpdateManifest_RecreatesMissingWorkspace(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mgr := workspace.New(env.FS, "")
	m := fixedMatrix()

	require.NoError(t, mgr.UpdateManifest(m, nil))
	assert.True(t, mgr.HasWorkspace(m))
	assert.True(t, mgr.HasManifest(m))
}

func TestCreateWorkspace_Errors(t *testing.T) {
	ro := filesystem.NewAferoFS(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	mgr := workspace.New(ro, "")

	err := mgr.CreateWorkspace(fixedMatrix(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkspace))

	m := fixedMatrix()
	m.WorkspacePath = ""
	assert.True(t, errors.IsErrorCode(workspace.New(ro, "").CreateWorkspace(m, nil), errors.ErrWorkspace))
}

func TestCreateWorkspace_ManifestWriteFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	mgr := workspace.New(env.FS, "")
	m := fixedMatrix()
	m.WorkspacePath = filepath.Join(env.Root, "matrices", "payments-5f0c1a2b")

	// A directory squatting on the manifest name makes the write fail.
	require.NoError(t, env.FS.MkdirAll(mgr.ManifestPath(m), 0755))

	err := mgr.CreateWorkspace(m, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifest))
	assert.False(t, mgr.HasManifest(m))
}
