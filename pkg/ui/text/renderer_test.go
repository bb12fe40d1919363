// pkg/ui/text/renderer_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test the plain text layout of command results

package text_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/arthur-debert/matrix/pkg/commands"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/arthur-debert/matrix/pkg/ui/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, text.New(&buf, text.PlainStyler()).RenderResult(v))
	return buf.String()
}

func sampleReport() *types.ReconcileReport {
	report := types.NewReconcileReport()
	report.WorkspaceRecreated = true
	report.SourcesReconciled = []types.SourceResult{
		{SourceID: "a", SourceName: "alpha", Status: types.SourceStatusOK, Action: "symlink valid"},
		{SourceID: "b", SourceName: "beta", Status: types.SourceStatusRepaired, Action: "symlink recreated"},
		{SourceID: "c", SourceName: "gamma", Status: types.SourceStatusError, Action: "reclone failed: boom"},
	}
	report.OrphanedSourceIDs = []string{"gone"}
	return report
}

func TestRenderReport(t *testing.T) {
	out := render(t, sampleReport())

	assert.Contains(t, out, "workspace recreated")
	assert.NotContains(t, out, "manifest recreated")
	assert.Contains(t, out, "[ok] alpha ")
	assert.Contains(t, out, "[repaired] beta ")
	assert.Contains(t, out, "reclone failed: boom")
	assert.Contains(t, out, "warning: orphaned source gone")
	assert.Contains(t, out, "1 ok, 1 repaired, 0 skipped, 1 errors, repairs made")
}

func TestRenderReconcileResults(t *testing.T) {
	results := []*commands.ReconcileResult{
		{Matrix: types.Matrix{Name: "one"}, Report: types.NewReconcileReport()},
		{Matrix: types.Matrix{Name: "two"}, Report: sampleReport()},
	}
	out := render(t, results)

	assert.Contains(t, out, "Matrix one")
	assert.Contains(t, out, "Matrix two")
	assert.Contains(t, out, "0 ok, 0 repaired, 0 skipped, 0 errors\n")

	assert.Contains(t, render(t, []*commands.ReconcileResult{}), "No matrices to reconcile.")
}

func TestRenderMatricesAndSources(t *testing.T) {
	assert.Equal(t, "No matrices.\n", render(t, []types.Matrix{}))
	assert.Equal(t, "No sources.\n", render(t, []types.Source{}))

	m := types.Matrix{ID: "0123456789abcdef", Name: "work", SourceIDs: []string{"x", "y"}, UpdatedAt: time.Now()}
	out := render(t, []types.Matrix{m})
	assert.Contains(t, out, "work  01234567  2 sources")

	src := types.Source{ID: "fedcba9876543210", Name: "repo", Path: "/src/repo", URL: "https://example.com/repo.git", SourceType: types.SourceTypeRemote}
	out = render(t, []types.Source{src})
	assert.Contains(t, out, "repo  fedcba98  remote  /src/repo")

	out = render(t, src)
	assert.Contains(t, out, "URL:  https://example.com/repo.git")
}

func TestRenderAssociation(t *testing.T) {
	src := types.Source{ID: "s1", Name: "repo"}
	added := &commands.AssociationResult{
		Matrix:   types.Matrix{Name: "work", SourceIDs: []string{"s1"}},
		Source:   src,
		Changed:  true,
		LinkPath: "/ws/repo",
		Warnings: []string{"link failed"},
	}
	out := render(t, added)
	assert.Contains(t, out, "Added repo to work")
	assert.Contains(t, out, "Link: /ws/repo")
	assert.Contains(t, out, "warning: link failed")

	removed := &commands.AssociationResult{Matrix: types.Matrix{Name: "work"}, Source: src, Changed: true}
	assert.Contains(t, render(t, removed), "Removed repo from work")

	noop := &commands.AssociationResult{Matrix: types.Matrix{Name: "work", SourceIDs: []string{"s1"}}, Source: src}
	assert.Contains(t, render(t, noop), "repo is already in work")
}

func TestRenderRename(t *testing.T) {
	res := &commands.RenameMatrixResult{
		Matrix:       types.Matrix{ID: "m1", Name: "new", WorkspacePath: "/ws/old-m1"},
		PreviousName: "old",
		Warnings:     []string{"manifest write failed"},
	}
	out := render(t, res)
	assert.Contains(t, out, "Renamed old to new")
	assert.Contains(t, out, "Workspace: /ws/old-m1")
	assert.Contains(t, out, "warning: manifest write failed")
}

func TestRenderManifestAndStrings(t *testing.T) {
	assert.Equal(t, "# Title\n", render(t, &commands.ManifestResult{Content: "# Title"}))
	assert.Equal(t, "/some/path\n", render(t, "/some/path"))
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r := text.New(&buf, text.PlainStyler())
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "no matrix")))
	assert.Equal(t, "error: [NOT_FOUND] no matrix\n", buf.String())
}

func TestRichStylerKeepsContent(t *testing.T) {
	s := text.RichStyler()
	assert.Contains(t, s.Heading("Matrix"), "Matrix")
	assert.Contains(t, s.Status(types.SourceStatusOK), "OK")
	assert.Contains(t, s.Warning("careful"), "careful")
}
