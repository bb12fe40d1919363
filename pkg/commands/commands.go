// Package commands provides high-level command implementations for matrix.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the core components.
//
// Each command group is implemented in its own subdirectory:
//   - matrices/    - create, list, rename, delete matrices
//   - sources/     - register local and remote sources, clone
//   - association/ - add sources to matrices and remove them
//   - reconcile/   - repair drift and persist moved sources
//   - manifest/    - show a manifest
//   - deps/        - component wiring from config
//
// Service bundles them behind one value for the CLI.
package commands

import (
	"context"

	"github.com/arthur-debert/matrix/pkg/commands/association"
	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/commands/manifest"
	"github.com/arthur-debert/matrix/pkg/commands/matrices"
	"github.com/arthur-debert/matrix/pkg/commands/reconcile"
	"github.com/arthur-debert/matrix/pkg/commands/sources"
	"github.com/arthur-debert/matrix/pkg/config"
	"github.com/arthur-debert/matrix/pkg/types"
)

// Re-export option and result types so callers need only this package.
type (
	CreateMatrixOptions = matrices.CreateOptions
	CreateMatrixResult  = matrices.CreateResult
	RenameMatrixResult  = matrices.RenameResult
	AddLocalOptions     = sources.AddLocalOptions
	AddRemoteOptions    = sources.AddRemoteOptions
	AssociationResult   = association.Result
	ReconcileResult     = reconcile.Result
	ManifestResult      = manifest.Result
)

// Service runs commands against one set of wired components.
type Service struct {
	deps *deps.Deps
}

// NewService wraps d.
func NewService(d *deps.Deps) *Service {
	return &Service{deps: d}
}

// New builds a Service on the real filesystem from cfg.
func New(cfg *config.Config) (*Service, error) {
	d, err := deps.Default(cfg)
	if err != nil {
		return nil, err
	}
	return NewService(d), nil
}

// Deps exposes the wired components.
func (s *Service) Deps() *deps.Deps { return s.deps }

func (s *Service) CreateMatrix(opts CreateMatrixOptions) (*CreateMatrixResult, error) {
	return matrices.Create(s.deps, opts)
}

func (s *Service) ListMatrices() ([]types.Matrix, error) {
	return matrices.List(s.deps)
}

func (s *Service) GetMatrix(ref string) (types.Matrix, error) {
	return matrices.Get(s.deps, ref)
}

func (s *Service) RenameMatrix(ref, name string) (*RenameMatrixResult, error) {
	return matrices.Rename(s.deps, ref, name)
}

func (s *Service) DeleteMatrix(ref string) (types.Matrix, error) {
	return matrices.Delete(s.deps, ref)
}

func (s *Service) AddLocalSource(opts AddLocalOptions) (types.Source, error) {
	return sources.AddLocal(s.deps, opts)
}

func (s *Service) AddRemoteSource(ctx context.Context, opts AddRemoteOptions) (types.Source, error) {
	return sources.AddRemote(ctx, s.deps, opts)
}

func (s *Service) ListSources() ([]types.Source, error) {
	return sources.List(s.deps)
}

func (s *Service) RemoveSource(ref string) (types.Source, error) {
	return sources.Remove(s.deps, ref)
}

func (s *Service) Clone(ctx context.Context, url, name string) (string, error) {
	return sources.Clone(ctx, s.deps, url, name)
}

// Link adds a source to a matrix.
func (s *Service) Link(matrixRef, sourceRef string) (*AssociationResult, error) {
	return association.Add(s.deps, matrixRef, sourceRef)
}

// Unlink removes a source from a matrix.
func (s *Service) Unlink(matrixRef, sourceRef string) (*AssociationResult, error) {
	return association.Remove(s.deps, matrixRef, sourceRef)
}

func (s *Service) Reconcile(ctx context.Context, matrixRef string) (*ReconcileResult, error) {
	return reconcile.Run(ctx, s.deps, matrixRef)
}

func (s *Service) ReconcileAll(ctx context.Context) ([]*ReconcileResult, error) {
	return reconcile.All(ctx, s.deps)
}

func (s *Service) ShowManifest(matrixRef string) (*ManifestResult, error) {
	return manifest.Show(s.deps, matrixRef)
}
