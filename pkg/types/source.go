package types

import (
	"time"

	"github.com/google/uuid"
)

// SourceType tells how a source's path came to exist on disk.
type SourceType string

const (
	// SourceTypeLocal is a directory the user already had. It is never
	// recreated by matrix.
	SourceTypeLocal SourceType = "local"

	// SourceTypeRemote is a clone managed in the shared repositories root.
	// It can be recloned from URL when the clone disappears.
	SourceTypeRemote SourceType = "remote"
)

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	return t == SourceTypeLocal || t == SourceTypeRemote
}

// Source is a reference to a local directory or a git repository clone.
type Source struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path" yaml:"path"`
	URL        string     `json:"url,omitempty" yaml:"url,omitempty"`
	SourceType SourceType `json:"source_type" yaml:"source_type"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}

// NewSource creates a Source with a fresh id and creation timestamp.
func NewSource(name, path string, sourceType SourceType, url string) Source {
	return Source{
		ID:         uuid.NewString(),
		Name:       name,
		Path:       path,
		URL:        url,
		SourceType: sourceType,
		CreatedAt:  time.Now().UTC(),
	}
}

// IsRemote reports whether the source is a managed clone.
func (s Source) IsRemote() bool {
	return s.SourceType == SourceTypeRemote
}

// ShortID returns the first 8 characters of the id, used to disambiguate
// link names.
func (s Source) ShortID() string {
	if len(s.ID) <= 8 {
		return s.ID
	}
	return s.ID[:8]
}
