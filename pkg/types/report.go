package types

import "encoding/json"

// SourceStatus is the outcome of reconciling one source.
type SourceStatus string

const (
	SourceStatusOK       SourceStatus = "ok"
	SourceStatusRepaired SourceStatus = "repaired"
	SourceStatusSkipped  SourceStatus = "skipped"
	SourceStatusError    SourceStatus = "error"
)

// SourceResult describes what reconciliation found and did for one source.
type SourceResult struct {
	SourceID   string       `json:"source_id" yaml:"source_id" toml:"source_id"`
	SourceName string       `json:"source_name" yaml:"source_name" toml:"source_name"`
	Status     SourceStatus `json:"status" yaml:"status" toml:"status"`
	Action     string       `json:"action" yaml:"action" toml:"action"`

	// Path is set when a repair left the source at a location different
	// from its record, so the caller can persist it.
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
}

// ReconcileReport is the structured outcome of one reconciliation run.
// Results keep the input order of the sources.
type ReconcileReport struct {
	WorkspaceRecreated bool           `json:"workspace_recreated" yaml:"workspace_recreated" toml:"workspace_recreated"`
	MatrixMDRecreated  bool           `json:"matrix_md_recreated" yaml:"matrix_md_recreated" toml:"matrix_md_recreated"`
	SourcesReconciled  []SourceResult `json:"sources_reconciled" yaml:"sources_reconciled" toml:"sources_reconciled"`
	OrphanedSourceIDs  []string       `json:"orphaned_source_ids" yaml:"orphaned_source_ids" toml:"orphaned_source_ids"`
}

// NewReconcileReport returns an empty report with non-nil slices so it
// serializes as empty lists rather than null.
func NewReconcileReport() *ReconcileReport {
	return &ReconcileReport{
		SourcesReconciled: []SourceResult{},
		OrphanedSourceIDs: []string{},
	}
}

// HasRepairs reports whether the run changed anything on disk.
func (r *ReconcileReport) HasRepairs() bool {
	if r.WorkspaceRecreated || r.MatrixMDRecreated {
		return true
	}
	for _, result := range r.SourcesReconciled {
		if result.Status == SourceStatusRepaired {
			return true
		}
	}
	return false
}

// Counts tallies results by status.
func (r *ReconcileReport) Counts() map[SourceStatus]int {
	counts := make(map[SourceStatus]int, 4)
	for _, result := range r.SourcesReconciled {
		counts[result.Status]++
	}
	return counts
}

// reportView is the serialized shape, including the derived has_repairs.
type reportView struct {
	WorkspaceRecreated bool           `json:"workspace_recreated" yaml:"workspace_recreated" toml:"workspace_recreated"`
	MatrixMDRecreated  bool           `json:"matrix_md_recreated" yaml:"matrix_md_recreated" toml:"matrix_md_recreated"`
	SourcesReconciled  []SourceResult `json:"sources_reconciled" yaml:"sources_reconciled" toml:"sources_reconciled"`
	OrphanedSourceIDs  []string       `json:"orphaned_source_ids" yaml:"orphaned_source_ids" toml:"orphaned_source_ids"`
	HasRepairs         bool           `json:"has_repairs" yaml:"has_repairs" toml:"has_repairs"`
}

// View returns the plain structured value handed to serializers.
func (r *ReconcileReport) View() any {
	return reportView{
		WorkspaceRecreated: r.WorkspaceRecreated,
		MatrixMDRecreated:  r.MatrixMDRecreated,
		SourcesReconciled:  r.SourcesReconciled,
		OrphanedSourceIDs:  r.OrphanedSourceIDs,
		HasRepairs:         r.HasRepairs(),
	}
}

// MarshalJSON emits the report together with has_repairs.
func (r *ReconcileReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.View())
}

// MarshalYAML emits the report together with has_repairs.
func (r *ReconcileReport) MarshalYAML() (interface{}, error) {
	return r.View(), nil
}
