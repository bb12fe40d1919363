package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/matrix/pkg/types"
)

// FileTree represents a nested file structure for declarative test setup.
// Values are either file content (string) or a nested FileTree.
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Unsupported FileTree value for %s: %T", fullPath, content)
		}
	}
}

// CreateFileTree creates tree below basePath on fs.
func CreateFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()
	createFileTree(t, fs, basePath, tree)
}
