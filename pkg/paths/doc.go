// Package paths provides centralized path handling for matrix.
//
// Everything lives under a single root directory:
//
//   - <root>/matrices/<slug>-<short id>  one workspace per matrix
//   - <root>/repositories/<dir>          shared clone cache for remote sources
//   - <root>/matrix.yaml                 default record store
//
// The root is injected (config, flag or MATRIX_ROOT) and defaults to
// $XDG_DATA_HOME/matrix.
//
// # Usage
//
//	p, err := paths.New(cfg.Root)
//	if err != nil {
//	    return err
//	}
//	workspace := p.WorkspacePath("My Project", id) // <root>/matrices/my-project-a1b2c3d4
package paths
