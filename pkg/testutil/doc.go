// Package testutil provides utilities for testing matrix components.
//
// Key components:
//   - TestEnvironment: isolated root, filesystem and paths with helpers to
//     create local sources, fake clones and matrices
//   - FakeRunner: executil.Runner that records invocations and simulates git
//   - FileTree: declarative directory setup
//
// Usage guidelines:
//   - Symlink behaviour needs EnvIsolated; the in-memory filesystem has no
//     symlinks
//   - Manifest and workspace tests can use EnvMemoryOnly
//   - Each test should be completely isolated with no shared state
package testutil
