// Package matrices implements creating, listing, renaming and deleting
// matrices.
package matrices

import (
	"slices"
	"strings"

	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/store"
	"github.com/arthur-debert/matrix/pkg/types"
)

// CreateOptions defines the options for Create.
type CreateOptions struct {
	// Name is the display name; the workspace folder is derived from it.
	Name string
	// SourceRefs are sources (id, name or id prefix) to include right away.
	SourceRefs []string
}

// CreateResult is what Create did.
type CreateResult struct {
	Matrix   types.Matrix `json:"matrix" yaml:"matrix"`
	Warnings []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Create persists a new matrix, creates its workspace and manifest, and
// links the initial sources. Link failures are warnings: reconcile repairs
// them later.
func Create(d *deps.Deps, opts CreateOptions) (*CreateResult, error) {
	log := logging.GetLogger("commands.matrices")
	log.Debug().Str("command", "Create").Str("name", opts.Name).Msg("Executing command")

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "matrix name is required")
	}

	sources := make([]types.Source, 0, len(opts.SourceRefs))
	ids := make([]string, 0, len(opts.SourceRefs))
	for _, ref := range opts.SourceRefs {
		src, err := store.FindSource(d.Store, ref)
		if err != nil {
			return nil, err
		}
		if slices.Contains(ids, src.ID) {
			continue
		}
		sources = append(sources, src)
		ids = append(ids, src.ID)
	}

	m := types.NewMatrix(name, ids, d.Paths)
	if err := d.Store.SaveMatrix(m); err != nil {
		return nil, err
	}
	if err := d.Workspace.CreateWorkspace(m, sources); err != nil {
		return nil, err
	}

	result := &CreateResult{Matrix: m}
	for _, src := range sources {
		if _, err := d.Linker.Link(src, m.WorkspacePath); err != nil {
			log.Warn().Err(err).Str("source", src.Name).Msg("Link failed")
			result.Warnings = append(result.Warnings, err.Error())
		}
	}

	log.Info().Str("matrix", m.Name).Str("path", m.WorkspacePath).Msg("Matrix created")
	return result, nil
}

// List returns every matrix record.
func List(d *deps.Deps) ([]types.Matrix, error) {
	return d.Store.ListMatrices()
}

// Get resolves ref to a matrix record.
func Get(d *deps.Deps, ref string) (types.Matrix, error) {
	return store.FindMatrix(d.Store, ref)
}

// Delete removes the matrix record. The workspace directory and the sources
// are left in place.
func Delete(d *deps.Deps, ref string) (types.Matrix, error) {
	m, err := store.FindMatrix(d.Store, ref)
	if err != nil {
		return types.Matrix{}, err
	}
	if err := d.Store.DeleteMatrix(m.ID); err != nil {
		return types.Matrix{}, err
	}
	log := logging.GetLogger("commands.matrices")
	log.Info().
		Str("matrix", m.Name).
		Str("workspace", m.WorkspacePath).
		Msg("Matrix deleted, workspace kept")
	return m, nil
}

// RenameResult is what Rename did.
type RenameResult struct {
	Matrix       types.Matrix `json:"matrix" yaml:"matrix"`
	PreviousName string       `json:"previous_name" yaml:"previous_name"`
	Warnings     []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Rename changes the display name of a matrix. The workspace path stays
// where NewMatrix put it; only the manifest is rewritten. A failed manifest
// write is a warning, reconcile regenerates it later.
func Rename(d *deps.Deps, ref, name string) (*RenameResult, error) {
	log := logging.GetLogger("commands.matrices")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "matrix name is required")
	}
	m, err := store.FindMatrix(d.Store, ref)
	if err != nil {
		return nil, err
	}

	result := &RenameResult{PreviousName: m.Name}
	if m.Rename(name) {
		if err := d.Store.SaveMatrix(m); err != nil {
			return nil, err
		}
	}
	result.Matrix = m

	sources, err := d.SourcesOf(m)
	if err == nil {
		err = d.Workspace.UpdateManifest(m, sources)
	}
	if err != nil {
		log.Warn().Err(err).Str("matrix", m.Name).Msg("Manifest update failed")
		result.Warnings = append(result.Warnings, err.Error())
	}

	log.Info().Str("from", result.PreviousName).Str("to", m.Name).Msg("Matrix renamed")
	return result, nil
}
