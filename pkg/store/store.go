// Package store persists matrix and source records.
//
// It is the record collaborator the reconciler is fed from: the engine
// itself never reads or writes records. The only implementation is a single
// YAML file, which is enough for a single-user tool.
package store

import (
	"strings"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/types"
)

// MatrixStore reads and writes matrix records.
type MatrixStore interface {
	GetMatrix(id string) (types.Matrix, error)
	ListMatrices() ([]types.Matrix, error)
	SaveMatrix(matrix types.Matrix) error
	DeleteMatrix(id string) error
}

// SourceStore reads and writes source records.
type SourceStore interface {
	GetSource(id string) (types.Source, error)
	ListSources() ([]types.Source, error)
	SaveSource(source types.Source) error
	DeleteSource(id string) error
}

// Store is both.
type Store interface {
	MatrixStore
	SourceStore
}

// minPrefix is the shortest id prefix accepted as a reference.
const minPrefix = 4

// FindMatrix resolves ref as an id, a name, or an unambiguous id prefix.
func FindMatrix(s MatrixStore, ref string) (types.Matrix, error) {
	all, err := s.ListMatrices()
	if err != nil {
		return types.Matrix{}, err
	}
	idx, err := find(len(all), ref, "matrix",
		func(i int) string { return all[i].ID },
		func(i int) string { return all[i].Name })
	if err != nil {
		return types.Matrix{}, err
	}
	return all[idx], nil
}

// FindSource resolves ref as an id, a name, or an unambiguous id prefix.
func FindSource(s SourceStore, ref string) (types.Source, error) {
	all, err := s.ListSources()
	if err != nil {
		return types.Source{}, err
	}
	idx, err := find(len(all), ref, "source",
		func(i int) string { return all[i].ID },
		func(i int) string { return all[i].Name })
	if err != nil {
		return types.Source{}, err
	}
	return all[idx], nil
}

func find(n int, ref, kind string, id, name func(int) string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, errors.Newf(errors.ErrInvalidInput, "empty %s reference", kind)
	}

	for i := 0; i < n; i++ {
		if id(i) == ref {
			return i, nil
		}
	}

	matches := func(pred func(int) bool) []int {
		var out []int
		for i := 0; i < n; i++ {
			if pred(i) {
				out = append(out, i)
			}
		}
		return out
	}

	byName := matches(func(i int) bool { return name(i) == ref })
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return -1, errors.Newf(errors.ErrInvalidInput, "%s name %q is ambiguous, use the id", kind, ref).
			WithDetail("matches", len(byName))
	}

	if len(ref) >= minPrefix {
		byPrefix := matches(func(i int) bool { return strings.HasPrefix(id(i), ref) })
		if len(byPrefix) == 1 {
			return byPrefix[0], nil
		}
		if len(byPrefix) > 1 {
			return -1, errors.Newf(errors.ErrInvalidInput, "%s id prefix %q is ambiguous", kind, ref)
		}
	}

	return -1, errors.Newf(errors.ErrNotFound, "%s %q not found", kind, ref)
}

// ResolveSources looks up ids in order. Ids without a record are returned
// separately instead of failing, so callers can report them as orphans.
func ResolveSources(s SourceStore, ids []string) (resolved []types.Source, missing []string, err error) {
	for _, id := range ids {
		source, err := s.GetSource(id)
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, source)
	}
	return resolved, missing, nil
}
