// Package reconcile runs reconciliation for stored matrices and writes back
// what the repair changed in the records.
package reconcile

import (
	"context"

	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/store"
	"github.com/arthur-debert/matrix/pkg/types"
)

// Result pairs a matrix with its reconcile report.
type Result struct {
	Matrix types.Matrix           `json:"matrix" yaml:"matrix"`
	Report *types.ReconcileReport `json:"report" yaml:"report"`
}

// Run reconciles one matrix. Sources that were recloned to a new location
// get their record path updated, and the manifest is rewritten to show it.
func Run(ctx context.Context, d *deps.Deps, matrixRef string) (*Result, error) {
	m, err := store.FindMatrix(d.Store, matrixRef)
	if err != nil {
		return nil, err
	}
	return run(ctx, d, m)
}

// All reconciles every stored matrix, stopping at the first matrix whose
// workspace cannot be created.
func All(ctx context.Context, d *deps.Deps) ([]*Result, error) {
	matrices, err := d.Store.ListMatrices()
	if err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(matrices))
	for _, m := range matrices {
		res, err := run(ctx, d, m)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func run(ctx context.Context, d *deps.Deps, m types.Matrix) (*Result, error) {
	log := logging.GetLogger("commands.reconcile")
	log.Debug().Str("command", "Reconcile").Str("matrix", m.Name).Msg("Executing command")

	sources, missing, err := store.ResolveSources(d.Store, m.SourceIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		log.Debug().Strs("source_ids", missing).Msg("Skipping sources without a record")
	}

	report, err := d.Reconciler.Reconcile(ctx, m, sources)
	result := &Result{Matrix: m, Report: report}
	if err != nil {
		return result, err
	}

	moved := false
	for _, r := range report.SourcesReconciled {
		if r.Path == "" {
			continue
		}
		for i := range sources {
			if sources[i].ID != r.SourceID {
				continue
			}
			sources[i].Path = r.Path
			if err := d.Store.SaveSource(sources[i]); err != nil {
				return result, err
			}
			moved = true
			log.Info().Str("source", sources[i].Name).Str("path", r.Path).Msg("Source path updated")
		}
	}
	if moved {
		if err := d.Workspace.UpdateManifest(m, sources); err != nil {
			log.Warn().Err(err).Msg("Manifest update failed")
		}
	}

	return result, nil
}
