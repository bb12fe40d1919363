// Package manifest shows a matrix manifest.
package manifest

import (
	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/store"
	"github.com/arthur-debert/matrix/pkg/workspace"
)

// Result carries the manifest text and where it came from.
type Result struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
	// OnDisk is false when the file is missing and Content was rendered from
	// the records instead.
	OnDisk bool `json:"on_disk" yaml:"on_disk"`
}

// Show returns the manifest file of a matrix, or a fresh rendering when the
// file does not exist.
func Show(d *deps.Deps, matrixRef string) (*Result, error) {
	m, err := store.FindMatrix(d.Store, matrixRef)
	if err != nil {
		return nil, err
	}

	path := d.Workspace.ManifestPath(m)
	if data, err := d.FS.ReadFile(path); err == nil {
		return &Result{Path: path, Content: string(data), OnDisk: true}, nil
	}

	sources, err := d.SourcesOf(m)
	if err != nil {
		return nil, err
	}
	return &Result{Path: path, Content: workspace.RenderManifest(m, sources)}, nil
}
