package reconcile

import (
	"context"
	"fmt"

	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/rs/zerolog"
)

// Actions recorded in SourceResult.Action.
const (
	ActionLinked          = "symlink valid"
	ActionRelinked        = "symlink recreated"
	ActionRecloned        = "recloned and symlink created"
	ActionLocalMissing    = "local path missing"
	ActionRemoteNoURL     = "remote clone missing and no URL"
	actionRecloneFailedFn = "reclone failed: %v"
)

// SourceLinker is the symlink capability the reconciler needs.
type SourceLinker interface {
	Link(source types.Source, workspace string) (string, error)
	Unlink(source types.Source, workspace string) error
	IsLinked(source types.Source, workspace string) bool
}

// RepositoryCloner clones remote sources on demand.
type RepositoryCloner interface {
	Clone(ctx context.Context, url, name string) (string, error)
}

// WorkspaceManager creates workspaces and writes manifests.
type WorkspaceManager interface {
	HasWorkspace(matrix types.Matrix) bool
	HasManifest(matrix types.Matrix) bool
	CreateWorkspace(matrix types.Matrix, sources []types.Source) error
	UpdateManifest(matrix types.Matrix, sources []types.Source) error
}

// Reconciler repairs drift between matrix records and the filesystem.
type Reconciler struct {
	fs        types.FS
	linker    SourceLinker
	cloner    RepositoryCloner
	workspace WorkspaceManager
	logger    zerolog.Logger
}

// New creates a Reconciler. fs is used to check whether source paths exist.
func New(fs types.FS, linker SourceLinker, cloner RepositoryCloner, workspace WorkspaceManager) *Reconciler {
	return &Reconciler{
		fs:        fs,
		linker:    linker,
		cloner:    cloner,
		workspace: workspace,
		logger:    logging.GetLogger("reconcile"),
	}
}

// Reconcile checks matrix against disk and repairs what it can. sources are
// the resolved records of matrix.SourceIDs; ids without a record must be
// left out by the caller and show up as orphans.
//
// The returned error is non-nil only when the workspace could not be
// created; the partial report is returned alongside it. Per-source failures
// are reported in the report.
func (r *Reconciler) Reconcile(ctx context.Context, matrix types.Matrix, sources []types.Source) (*types.ReconcileReport, error) {
	logger := r.logger.With().Str("matrix", matrix.Name).Str("matrix_id", matrix.ID).Logger()
	done := logging.LogOperationStart(logger, "reconcile")
	defer done()

	report := types.NewReconcileReport()

	if !r.workspace.HasWorkspace(matrix) {
		if err := r.workspace.CreateWorkspace(matrix, sources); err != nil {
			logger.Error().Err(err).Str("path", matrix.WorkspacePath).Msg("Cannot recreate workspace")
			return report, err
		}
		report.WorkspaceRecreated = true
		report.MatrixMDRecreated = true
		logger.Info().Str("path", matrix.WorkspacePath).Msg("Recreated workspace")
	} else if !r.workspace.HasManifest(matrix) {
		if err := r.workspace.UpdateManifest(matrix, sources); err != nil {
			logger.Warn().Err(err).Msg("Cannot regenerate manifest")
		} else {
			report.MatrixMDRecreated = true
			logger.Info().Msg("Regenerated manifest")
		}
	}

	report.OrphanedSourceIDs = orphans(matrix, sources)
	if len(report.OrphanedSourceIDs) > 0 {
		logger.Warn().Strs("source_ids", report.OrphanedSourceIDs).Msg("Matrix references missing sources")
	}

	for _, source := range sources {
		result := r.reconcileSource(ctx, matrix, source)
		report.SourcesReconciled = append(report.SourcesReconciled, result)

		event := logger.Debug()
		switch result.Status {
		case types.SourceStatusRepaired:
			event = logger.Info()
		case types.SourceStatusError, types.SourceStatusSkipped:
			event = logger.Warn()
		}
		event.Str("source", source.Name).
			Str("status", string(result.Status)).
			Str("action", result.Action).
			Msg("Reconciled source")
	}

	counts := report.Counts()
	logger.Info().
		Bool("has_repairs", report.HasRepairs()).
		Int("ok", counts[types.SourceStatusOK]).
		Int("repaired", counts[types.SourceStatusRepaired]).
		Int("skipped", counts[types.SourceStatusSkipped]).
		Int("errors", counts[types.SourceStatusError]).
		Int("orphans", len(report.OrphanedSourceIDs)).
		Msg("Reconciliation finished")

	return report, nil
}

func (r *Reconciler) reconcileSource(ctx context.Context, matrix types.Matrix, source types.Source) types.SourceResult {
	result := types.SourceResult{
		SourceID:   source.ID,
		SourceName: source.Name,
	}
	ws := matrix.WorkspacePath

	if r.linker.IsLinked(source, ws) {
		result.Status = types.SourceStatusOK
		result.Action = ActionLinked
		return result
	}

	action := ActionRelinked
	if !r.exists(source.Path) {
		if !source.IsRemote() {
			result.Status = types.SourceStatusSkipped
			result.Action = ActionLocalMissing
			return result
		}
		if source.URL == "" {
			result.Status = types.SourceStatusSkipped
			result.Action = ActionRemoteNoURL
			return result
		}

		path, err := r.cloner.Clone(ctx, source.URL, source.Name)
		if err != nil {
			result.Status = types.SourceStatusError
			result.Action = fmt.Sprintf(actionRecloneFailedFn, err)
			return result
		}
		if path != source.Path {
			// Drop the dangling link to the old location before linking the
			// new one under the same name.
			if err := r.linker.Unlink(source, ws); err != nil {
				r.logger.Debug().Err(err).Str("source", source.Name).Msg("Could not remove stale link")
			}
			source.Path = path
			result.Path = path
		}
		action = ActionRecloned
	}

	if _, err := r.linker.Link(source, ws); err != nil {
		result.Status = types.SourceStatusError
		result.Action = err.Error()
		return result
	}
	result.Status = types.SourceStatusRepaired
	result.Action = action
	return result
}

func (r *Reconciler) exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := r.fs.Stat(path)
	return err == nil
}

// orphans returns the ids of matrix with no resolved source, in matrix
// order.
func orphans(matrix types.Matrix, sources []types.Source) []string {
	resolved := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		resolved[s.ID] = struct{}{}
	}
	out := []string{}
	for _, id := range matrix.SourceIDs {
		if _, ok := resolved[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
