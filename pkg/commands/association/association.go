// Package association adds sources to matrices and removes them.
//
// Both directions persist the new association first, then touch the disk on
// a best-effort basis: a failed link or unlink is returned as a warning and
// left for reconcile to repair.
package association

import (
	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/store"
	"github.com/arthur-debert/matrix/pkg/types"
)

// Result is what Add or Remove did.
type Result struct {
	Matrix   types.Matrix `json:"matrix" yaml:"matrix"`
	Source   types.Source `json:"source" yaml:"source"`
	Changed  bool         `json:"changed" yaml:"changed"`
	LinkPath string       `json:"link_path,omitempty" yaml:"link_path,omitempty"`
	Warnings []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Add appends the source to the matrix, links it into the workspace and
// refreshes the manifest. Adding a source twice is a no-op apart from
// re-checking the link.
func Add(d *deps.Deps, matrixRef, sourceRef string) (*Result, error) {
	log := logging.GetLogger("commands.association")

	m, src, err := resolve(d, matrixRef, sourceRef)
	if err != nil {
		return nil, err
	}

	result := &Result{Source: src}
	result.Changed = m.AddSource(src.ID)
	if result.Changed {
		if err := d.Store.SaveMatrix(m); err != nil {
			return nil, err
		}
	}
	result.Matrix = m

	linkPath, err := d.Linker.Link(src, m.WorkspacePath)
	if err != nil {
		log.Warn().Err(err).Str("source", src.Name).Msg("Link failed")
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.LinkPath = linkPath

	refreshManifest(d, m, result)

	log.Info().Str("matrix", m.Name).Str("source", src.Name).Bool("changed", result.Changed).Msg("Source added")
	return result, nil
}

// Remove drops the source from the matrix, removes its symlink and
// refreshes the manifest. The source record and its files are kept.
func Remove(d *deps.Deps, matrixRef, sourceRef string) (*Result, error) {
	log := logging.GetLogger("commands.association")

	m, src, err := resolve(d, matrixRef, sourceRef)
	if err != nil {
		return nil, err
	}

	result := &Result{Source: src}
	result.Changed = m.RemoveSource(src.ID)
	if result.Changed {
		if err := d.Store.SaveMatrix(m); err != nil {
			return nil, err
		}
	}
	result.Matrix = m

	if err := d.Linker.Unlink(src, m.WorkspacePath); err != nil {
		log.Warn().Err(err).Str("source", src.Name).Msg("Unlink failed")
		result.Warnings = append(result.Warnings, err.Error())
	}

	refreshManifest(d, m, result)

	log.Info().Str("matrix", m.Name).Str("source", src.Name).Bool("changed", result.Changed).Msg("Source removed")
	return result, nil
}

func resolve(d *deps.Deps, matrixRef, sourceRef string) (types.Matrix, types.Source, error) {
	m, err := store.FindMatrix(d.Store, matrixRef)
	if err != nil {
		return types.Matrix{}, types.Source{}, err
	}
	src, err := store.FindSource(d.Store, sourceRef)
	if err != nil {
		return types.Matrix{}, types.Source{}, err
	}
	return m, src, nil
}

func refreshManifest(d *deps.Deps, m types.Matrix, result *Result) {
	logger := logging.GetLogger("commands.association")
	sources, err := d.SourcesOf(m)
	if err == nil {
		err = d.Workspace.UpdateManifest(m, sources)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Manifest update failed")
		result.Warnings = append(result.Warnings, err.Error())
	}
}
