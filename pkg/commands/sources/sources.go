// Package sources implements registering local and remote sources.
package sources

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/matrix/pkg/cloner"
	"github.com/arthur-debert/matrix/pkg/commands/deps"
	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/paths"
	"github.com/arthur-debert/matrix/pkg/store"
	"github.com/arthur-debert/matrix/pkg/types"
)

// AddLocalOptions defines the options for AddLocal.
type AddLocalOptions struct {
	// Path is an existing directory. Relative paths and ~ are resolved.
	Path string
	// Name defaults to the directory's base name.
	Name string
	// URL optionally records where the directory came from.
	URL string
}

// AddLocal registers an existing directory as a local source.
func AddLocal(d *deps.Deps, opts AddLocalOptions) (types.Source, error) {
	log := logging.GetLogger("commands.sources")

	if strings.TrimSpace(opts.Path) == "" {
		return types.Source{}, errors.New(errors.ErrInvalidInput, "source path is required")
	}
	path, err := filepath.Abs(paths.ExpandHome(opts.Path))
	if err != nil {
		return types.Source{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", opts.Path)
	}

	info, err := d.FS.Stat(path)
	if err != nil {
		return types.Source{}, errors.Wrapf(err, errors.ErrNotFound, "source path does not exist: %s", path)
	}
	if !info.IsDir() {
		return types.Source{}, errors.Newf(errors.ErrInvalidInput, "source path is not a directory: %s", path)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = filepath.Base(path)
	}

	src := types.NewSource(name, path, types.SourceTypeLocal, strings.TrimSpace(opts.URL))
	if err := d.Store.SaveSource(src); err != nil {
		return types.Source{}, err
	}

	log.Info().Str("source", src.Name).Str("path", src.Path).Msg("Local source added")
	return src, nil
}

// AddRemoteOptions defines the options for AddRemote.
type AddRemoteOptions struct {
	URL string
	// Name defaults to the repository name in URL.
	Name string
}

// AddRemote clones URL into the shared repositories root (or reuses the
// cached clone) and registers it as a remote source.
func AddRemote(ctx context.Context, d *deps.Deps, opts AddRemoteOptions) (types.Source, error) {
	log := logging.GetLogger("commands.sources")

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return types.Source{}, errors.New(errors.ErrInvalidInput, "repository URL is required")
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = cloner.ExtractName(url)
	}

	path, err := d.Cloner.Clone(ctx, url, name)
	if err != nil {
		return types.Source{}, err
	}

	src := types.NewSource(name, path, types.SourceTypeRemote, url)
	if err := d.Store.SaveSource(src); err != nil {
		return types.Source{}, err
	}

	log.Info().Str("source", src.Name).Str("url", url).Str("path", path).Msg("Remote source added")
	return src, nil
}

// List returns every source record.
func List(d *deps.Deps) ([]types.Source, error) {
	return d.Store.ListSources()
}

// Remove deletes the source record. Its directory, including a managed
// clone, stays on disk; matrices still listing it report it as an orphan.
func Remove(d *deps.Deps, ref string) (types.Source, error) {
	src, err := store.FindSource(d.Store, ref)
	if err != nil {
		return types.Source{}, err
	}
	if err := d.Store.DeleteSource(src.ID); err != nil {
		return types.Source{}, err
	}
	return src, nil
}

// Clone fetches url into the repositories cache without recording a source.
func Clone(ctx context.Context, d *deps.Deps, url, name string) (string, error) {
	return d.Cloner.Clone(ctx, url, name)
}
