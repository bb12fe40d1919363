// Package deps wires the matrix components from a resolved configuration.
package deps

import (
	"github.com/arthur-debert/matrix/pkg/cloner"
	"github.com/arthur-debert/matrix/pkg/config"
	"github.com/arthur-debert/matrix/pkg/executil"
	"github.com/arthur-debert/matrix/pkg/filesystem"
	"github.com/arthur-debert/matrix/pkg/linker"
	"github.com/arthur-debert/matrix/pkg/paths"
	"github.com/arthur-debert/matrix/pkg/reconcile"
	"github.com/arthur-debert/matrix/pkg/store"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/arthur-debert/matrix/pkg/workspace"
)

// Deps holds every component a command may need.
type Deps struct {
	FS         types.FS
	Paths      paths.Paths
	Store      store.Store
	Linker     *linker.Linker
	Cloner     *cloner.Cloner
	Workspace  *workspace.Manager
	Reconciler *reconcile.Reconciler
}

// New builds Deps on fs, running external tools through runner.
func New(cfg *config.Config, fs types.FS, runner executil.Runner) (*Deps, error) {
	p, err := cfg.Paths()
	if err != nil {
		return nil, err
	}

	l := linker.New(fs)
	c := cloner.New(cloner.Options{
		Root:         p.RepositoriesDir(),
		Tool:         cfg.Clone.Tool,
		Timeout:      cfg.Clone.Timeout,
		ProbeTimeout: cfg.Clone.ProbeTimeout,
		Layout:       cfg.Clone.Layout,
	}, fs, runner)
	ws := workspace.New(fs, cfg.Manifest.Filename)

	return &Deps{
		FS:         fs,
		Paths:      p,
		Store:      store.Open(fs, cfg.StoreFile(p)),
		Linker:     l,
		Cloner:     c,
		Workspace:  ws,
		Reconciler: reconcile.New(fs, l, c, ws),
	}, nil
}

// Default builds Deps on the real filesystem and os/exec.
func Default(cfg *config.Config) (*Deps, error) {
	return New(cfg, filesystem.NewOS(), executil.NewRunner())
}

// SourcesOf resolves the sources of matrix in order, skipping ids with no
// record.
func (d *Deps) SourcesOf(matrix types.Matrix) ([]types.Source, error) {
	resolved, _, err := store.ResolveSources(d.Store, matrix.SourceIDs)
	return resolved, err
}
