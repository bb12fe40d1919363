package types

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// WorkspacePather computes the workspace directory for a new matrix.
type WorkspacePather interface {
	WorkspacePath(name, id string) string
}

// Matrix is a named collection of Source references with a dedicated
// workspace directory.
//
// WorkspacePath is computed once by NewMatrix and never recomputed, even if
// the matrix is renamed. The matrix owns the association in SourceIDs, not
// the sources themselves.
type Matrix struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	SourceIDs     []string  `json:"source_ids" yaml:"source_ids"`
	WorkspacePath string    `json:"workspace_path" yaml:"workspace_path"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewMatrix creates a Matrix with a fresh id, timestamps and a workspace
// path fixed for the rest of its life.
func NewMatrix(name string, sourceIDs []string, pather WorkspacePather) Matrix {
	now := time.Now().UTC()
	id := uuid.NewString()
	if sourceIDs == nil {
		sourceIDs = []string{}
	}
	return Matrix{
		ID:            id,
		Name:          name,
		SourceIDs:     sourceIDs,
		WorkspacePath: pather.WorkspacePath(name, id),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasSource reports whether id is part of the matrix.
func (m Matrix) HasSource(id string) bool {
	return slices.Contains(m.SourceIDs, id)
}

// AddSource appends id unless already present. It returns true when the
// association changed.
func (m *Matrix) AddSource(id string) bool {
	if m.HasSource(id) {
		return false
	}
	m.SourceIDs = append(m.SourceIDs, id)
	m.touch()
	return true
}

// RemoveSource drops id, keeping the order of the others. It returns true
// when the association changed.
func (m *Matrix) RemoveSource(id string) bool {
	idx := slices.Index(m.SourceIDs, id)
	if idx < 0 {
		return false
	}
	m.SourceIDs = slices.Delete(m.SourceIDs, idx, idx+1)
	m.touch()
	return true
}

// Rename sets the display name. WorkspacePath is left alone. It returns
// true when the name changed.
func (m *Matrix) Rename(name string) bool {
	if m.Name == name {
		return false
	}
	m.Name = name
	m.touch()
	return true
}

func (m *Matrix) touch() {
	m.UpdatedAt = time.Now().UTC()
}
