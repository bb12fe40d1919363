// Package paths provides centralized path handling for matrix.
// Every on-disk location is derived from one injected root directory so
// that tests and parallel runs can use isolated trees.
package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/matrix/pkg/errors"
)

// Environment variable names
const (
	// EnvMatrixRoot overrides the default root directory
	EnvMatrixRoot = "MATRIX_ROOT"
)

// Directory and file names under the root. These define the on-disk layout
// and are not user-configurable.
const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "matrix"

	// MatricesDirName holds one workspace per matrix
	MatricesDirName = "matrices"

	// RepositoriesDirName is the shared clone cache
	RepositoriesDirName = "repositories"

	// StoreFileName is the default record store file
	StoreFileName = "matrix.yaml"

	// fallbackSlug is used when a name slugifies to nothing
	fallbackSlug = "matrix"
)

// Paths provides centralized path management for matrix
type Paths interface {
	Root() string
	MatricesDir() string
	RepositoriesDir() string
	WorkspacePath(name, id string) string
	StoreFile() string
}

type paths struct {
	root string
}

// New creates a Paths rooted at root. An empty root resolves through
// DefaultRoot.
func New(root string) (Paths, error) {
	if root == "" {
		root = DefaultRoot()
	}

	absRoot, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for root %s", root)
	}

	return &paths{root: absRoot}, nil
}

// DefaultRoot returns $MATRIX_ROOT when set, otherwise $XDG_DATA_HOME/matrix.
func DefaultRoot() string {
	if root := os.Getenv(EnvMatrixRoot); root != "" {
		return ExpandHome(root)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

func (p *paths) Root() string {
	return p.root
}

func (p *paths) MatricesDir() string {
	return filepath.Join(p.root, MatricesDirName)
}

func (p *paths) RepositoriesDir() string {
	return filepath.Join(p.root, RepositoriesDirName)
}

// WorkspacePath returns <root>/matrices/<slug>-<short id>. It is meant to be
// called once, when a matrix is created.
func (p *paths) WorkspacePath(name, id string) string {
	return filepath.Join(p.MatricesDir(), FolderName(name, id))
}

func (p *paths) StoreFile() string {
	return filepath.Join(p.root, StoreFileName)
}

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSeparate = regexp.MustCompile(`[\s_-]+`)
)

// Slugify lowercases text, drops punctuation and joins words with hyphens.
func Slugify(text string) string {
	text = strings.TrimSpace(strings.ToLower(text))
	text = slugStrip.ReplaceAllString(text, "")
	text = slugSeparate.ReplaceAllString(text, "-")
	return strings.Trim(text, "-")
}

// FolderName combines the slug of name with the first segment of id, e.g.
// "my-project-a1b2c3d4".
func FolderName(name, id string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = fallbackSlug
	}
	shortID, _, _ := strings.Cut(id, "-")
	return slug + "-" + shortID
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
