// Package workspace creates matrix workspace directories and keeps their
// manifest file in sync with the matrix record.
package workspace

import (
	"path/filepath"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/rs/zerolog"
)

// Manager owns workspace directories and manifests.
type Manager struct {
	fs           types.FS
	manifestName string
	logger       zerolog.Logger
}

// New creates a Manager. An empty manifestName uses DefaultManifestName.
func New(fs types.FS, manifestName string) *Manager {
	if manifestName == "" {
		manifestName = DefaultManifestName
	}
	return &Manager{
		fs:           fs,
		manifestName: manifestName,
		logger:       logging.GetLogger("workspace"),
	}
}

// ManifestName returns the manifest file name.
func (m *Manager) ManifestName() string {
	return m.manifestName
}

// ManifestPath returns where the manifest of matrix lives.
func (m *Manager) ManifestPath(matrix types.Matrix) string {
	return filepath.Join(matrix.WorkspacePath, m.manifestName)
}

// HasWorkspace reports whether the workspace directory exists.
func (m *Manager) HasWorkspace(matrix types.Matrix) bool {
	info, err := m.fs.Stat(matrix.WorkspacePath)
	return err == nil && info.IsDir()
}

// HasManifest reports whether the manifest file exists.
func (m *Manager) HasManifest(matrix types.Matrix) bool {
	info, err := m.fs.Stat(m.ManifestPath(matrix))
	return err == nil && !info.IsDir()
}

// CreateWorkspace creates the workspace directory if needed and writes the
// manifest.
func (m *Manager) CreateWorkspace(matrix types.Matrix, sources []types.Source) error {
	if matrix.WorkspacePath == "" {
		return errors.Newf(errors.ErrWorkspace, "matrix %s has no workspace path", matrix.Name)
	}
	if err := m.fs.MkdirAll(matrix.WorkspacePath, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWorkspace, "failed to create workspace %s", matrix.WorkspacePath).
			WithDetail("matrix_id", matrix.ID)
	}
	m.logger.Info().Str("matrix", matrix.Name).Str("path", matrix.WorkspacePath).Msg("Workspace ready")
	return m.writeManifest(matrix, sources)
}

// UpdateManifest rewrites the manifest, creating the workspace first when it
// has gone missing.
func (m *Manager) UpdateManifest(matrix types.Matrix, sources []types.Source) error {
	if !m.HasWorkspace(matrix) {
		m.logger.Debug().Str("path", matrix.WorkspacePath).Msg("Workspace missing, recreating")
		return m.CreateWorkspace(matrix, sources)
	}
	return m.writeManifest(matrix, sources)
}

func (m *Manager) writeManifest(matrix types.Matrix, sources []types.Source) error {
	path := m.ManifestPath(matrix)
	if err := m.fs.WriteFile(path, []byte(RenderManifest(matrix, sources)), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifest, "failed to write manifest %s", path).
			WithDetail("matrix_id", matrix.ID)
	}
	m.logger.Debug().Str("path", path).Int("sources", len(sources)).Msg("Manifest written")
	return nil
}
