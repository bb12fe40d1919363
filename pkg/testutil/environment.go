// pkg/testutil/environment.go
// DEPENDENCIES: filesystem, paths, types
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/matrix/pkg/filesystem"
	"github.com/arthur-debert/matrix/pkg/paths"
	"github.com/arthur-debert/matrix/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Root is the matrix root (matrices/ and repositories/ live here)
	Root string
	// SourcesDir holds the directories used as local sources
	SourcesDir string

	FS     types.FS
	Paths  paths.Paths
	Runner *FakeRunner

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/matrix"
		env.SourcesDir = "/virtual/src"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		// Resolve the temp dir so paths compare equal to EvalSymlinks output
		// on systems where TMPDIR is itself a symlink (macOS).
		tempDir, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.Root = filepath.Join(tempDir, "matrix")
		env.SourcesDir = filepath.Join(tempDir, "src")
		env.FS = filesystem.NewOS()
	}

	for _, dir := range []string{env.Root, env.SourcesDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New(env.Root)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p
	env.Runner = NewFakeRunner(env.FS)

	return env
}

// LocalSource creates a directory under SourcesDir and returns a local
// Source record pointing at it.
func (env *TestEnvironment) LocalSource(name string) types.Source {
	env.t.Helper()

	dir := filepath.Join(env.SourcesDir, name)
	createFileTree(env.t, env.FS, dir, FileTree{"README.md": "# " + name + "\n"})
	return types.NewSource(name, dir, types.SourceTypeLocal, "")
}

// RemoteSource creates a fake clone (a directory with .git) under the
// repositories root and returns a remote Source record for it.
func (env *TestEnvironment) RemoteSource(name, url string) types.Source {
	env.t.Helper()

	dir := filepath.Join(env.Paths.RepositoriesDir(), name)
	createFileTree(env.t, env.FS, dir, FileTree{
		".git": FileTree{
			"HEAD":   "ref: refs/heads/main\n",
			"config": GitConfig(url),
		},
		"README.md": "# " + name + "\n",
	})
	return types.NewSource(name, dir, types.SourceTypeRemote, url)
}

// NewMatrix builds a matrix record over sources. The workspace is not
// created.
func (env *TestEnvironment) NewMatrix(name string, sources ...types.Source) types.Matrix {
	ids := make([]string, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	return types.NewMatrix(name, ids, env.Paths)
}

// RemovePath deletes path and everything below it.
func (env *TestEnvironment) RemovePath(path string) {
	env.t.Helper()
	if err := env.FS.RemoveAll(path); err != nil {
		env.t.Fatalf("Failed to remove %s: %v", path, err)
	}
}

// WithFileTree creates a complete file tree structure under Root
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Root, tree)
}
