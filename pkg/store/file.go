package store

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const fileVersion = 1

type document struct {
	Version  int            `yaml:"version"`
	Matrices []types.Matrix `yaml:"matrices"`
	Sources  []types.Source `yaml:"sources"`
}

// FileStore keeps all records in one YAML file, read on every call so that
// edits made by another process are picked up.
type FileStore struct {
	fs     types.FS
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// Open returns a FileStore backed by path. The file is created on first
// write.
func Open(fs types.FS, path string) *FileStore {
	return &FileStore{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("store"),
	}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) GetMatrix(id string) (types.Matrix, error) {
	doc, err := s.read()
	if err != nil {
		return types.Matrix{}, err
	}
	for _, m := range doc.Matrices {
		if m.ID == id {
			return m, nil
		}
	}
	return types.Matrix{}, errors.Newf(errors.ErrNotFound, "matrix %s not found", id)
}

func (s *FileStore) ListMatrices() ([]types.Matrix, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Matrices, nil
}

// SaveMatrix inserts or replaces the record with the same id.
func (s *FileStore) SaveMatrix(matrix types.Matrix) error {
	if matrix.ID == "" {
		return errors.New(errors.ErrInvalidInput, "matrix has no id")
	}
	return s.update(func(doc *document) error {
		idx := slices.IndexFunc(doc.Matrices, func(m types.Matrix) bool { return m.ID == matrix.ID })
		if idx < 0 {
			doc.Matrices = append(doc.Matrices, matrix)
		} else {
			doc.Matrices[idx] = matrix
		}
		return nil
	})
}

// DeleteMatrix removes the record only. Its sources and workspace stay.
func (s *FileStore) DeleteMatrix(id string) error {
	return s.update(func(doc *document) error {
		idx := slices.IndexFunc(doc.Matrices, func(m types.Matrix) bool { return m.ID == id })
		if idx < 0 {
			return errors.Newf(errors.ErrNotFound, "matrix %s not found", id)
		}
		doc.Matrices = slices.Delete(doc.Matrices, idx, idx+1)
		return nil
	})
}

func (s *FileStore) GetSource(id string) (types.Source, error) {
	doc, err := s.read()
	if err != nil {
		return types.Source{}, err
	}
	for _, src := range doc.Sources {
		if src.ID == id {
			return src, nil
		}
	}
	return types.Source{}, errors.Newf(errors.ErrNotFound, "source %s not found", id)
}

func (s *FileStore) ListSources() ([]types.Source, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Sources, nil
}

// SaveSource inserts or replaces the record with the same id.
func (s *FileStore) SaveSource(source types.Source) error {
	if source.ID == "" {
		return errors.New(errors.ErrInvalidInput, "source has no id")
	}
	return s.update(func(doc *document) error {
		idx := slices.IndexFunc(doc.Sources, func(src types.Source) bool { return src.ID == source.ID })
		if idx < 0 {
			doc.Sources = append(doc.Sources, source)
		} else {
			doc.Sources[idx] = source
		}
		return nil
	})
}

// DeleteSource removes the record. Matrices still listing its id will report
// it as an orphan.
func (s *FileStore) DeleteSource(id string) error {
	return s.update(func(doc *document) error {
		idx := slices.IndexFunc(doc.Sources, func(src types.Source) bool { return src.ID == id })
		if idx < 0 {
			return errors.Newf(errors.ErrNotFound, "source %s not found", id)
		}
		doc.Sources = slices.Delete(doc.Sources, idx, idx+1)
		return nil
	})
}

func (s *FileStore) read() (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *FileStore) load() (*document, error) {
	doc := &document{Version: fileVersion}

	data, err := s.fs.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to read %s", s.path)
	}

	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to parse %s", s.path)
	}
	if doc.Version > fileVersion {
		return nil, errors.Newf(errors.ErrStore, "%s has version %d, this build reads up to %d",
			s.path, doc.Version, fileVersion)
	}
	return doc, nil
}

func (s *FileStore) save(doc *document) error {
	doc.Version = fileVersion
	if doc.Matrices == nil {
		doc.Matrices = []types.Matrix{}
	}
	if doc.Sources == nil {
		doc.Sources = []types.Source{}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrStore, "failed to encode records")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStore, "failed to create %s", filepath.Dir(s.path))
	}
	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStore, "failed to write %s", s.path)
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("matrices", len(doc.Matrices)).
		Int("sources", len(doc.Sources)).
		Msg("Records saved")
	return nil
}
